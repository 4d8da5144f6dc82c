// cmd/recordbase/cmd/import.go
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"recordbase/internal/app"
	"recordbase/internal/domain/record"

	"github.com/spf13/cobra"
)

var importYes bool

var importCmd = &cobra.Command{
	Use:   "import [файл]",
	Short: "Импортировать записи из JSON",
	Long: `Атомарно замещает всю коллекцию содержимым JSON-файла.
Существующие записи будут удалены. При ошибке разбора коллекция не меняется.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, ok := cmd.Context().Value("app").(*app.App)
		if !ok || application == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if !importYes {
			fmt.Print("Импорт заменит все существующие записи. Продолжить? [y/N]: ")
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println("Отменено")
				return nil
			}
		}

		count, err := application.ImportFromFile(cmd.Context(), args[0])
		if err != nil {
			if verr, ok := record.AsValidation(err); ok && verr.Reason == record.ReasonNotASequence {
				return fmt.Errorf("файл не содержит JSON-массив записей")
			}
			return fmt.Errorf("ошибка импорта: %w", err)
		}

		fmt.Printf("Импортировано записей: %d\n", count)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "не запрашивать подтверждение")
}
