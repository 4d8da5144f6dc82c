package record

import (
	"fmt"

	"recordbase/internal/app"

	"github.com/spf13/cobra"
)

// RecordCmd - родительская команда для всех операций с записями
var RecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Управление записями",
	Long:  `Создание, просмотр, обновление, поиск и удаление записей картотеки.`,
}

func appFromContext(cmd *cobra.Command) (*app.App, error) {
	application, ok := cmd.Context().Value("app").(*app.App)
	if !ok || application == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return application, nil
}
