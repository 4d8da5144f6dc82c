// cmd/recordbase/cmd/export.go
package cmd

import (
	"errors"
	"fmt"

	"recordbase/internal/app"
	"recordbase/internal/domain/record"

	"github.com/spf13/cobra"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Экспортировать все записи в JSON",
	Long: `Выгружает всю коллекцию в JSON-файл. Имя файла включает имя
хранилища и текущую дату, например records_export_2026-08-29.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, ok := cmd.Context().Value("app").(*app.App)
		if !ok || application == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		path, err := application.ExportToFile(cmd.Context(), exportDir)
		if err != nil {
			if errors.Is(err, record.ErrNothingToExport) {
				fmt.Println("Нет данных для экспорта")
				return nil
			}
			return fmt.Errorf("ошибка экспорта: %w", err)
		}

		fmt.Printf("Экспорт завершен: %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", ".", "каталог для файла экспорта")
}
