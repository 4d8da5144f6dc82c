// cmd/recordbase/cmd/record/search.go
package record

import (
	"errors"
	"fmt"
	"strings"

	"recordbase/internal/domain/record"

	"github.com/spf13/cobra"
)

var searchField string

var SearchCmd = &cobra.Command{
	Use:   "search [термин]",
	Short: "Поиск записей",
	Long: `Ищет записи, у которых значение поля содержит подстроку без учета регистра.

Поле задается флагом --field и должно входить в список полей поиска схемы.
Пустой термин возвращает все записи.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		term := ""
		if len(args) > 0 {
			term = args[0]
		}

		records, err := application.SearchRecords(cmd.Context(), searchField, term)
		if err != nil {
			if errors.Is(err, record.ErrInvalidSearchField) {
				return fmt.Errorf("поиск по полю %q не поддерживается, доступны: %s",
					searchField, strings.Join(application.Schema().SearchFields, ", "))
			}
			return fmt.Errorf("ошибка поиска: %w", err)
		}

		return printRecords(application, records)
	},
}

func init() {
	SearchCmd.Flags().StringVarP(&searchField, "field", "f", "name", "поле поиска из схемы")
}
