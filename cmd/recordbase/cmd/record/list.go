// cmd/recordbase/cmd/record/list.go
package record

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"recordbase/internal/app"
	"recordbase/internal/domain/record"
	"recordbase/internal/domain/schema"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список записей",
	Long:  `Просмотр всех записей картотеки в порядке их идентификаторов.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		records, err := application.ListRecords(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения списка записей: %w", err)
		}

		return printRecords(application, records)
	},
}

func printRecords(application *app.App, records []record.Record) error {
	switch listFormat {
	case "json":
		return printRecordsJSON(records)
	case "table":
		return printRecordsTable(application, records)
	default:
		return printRecordsSimple(application, records)
	}
}

func printRecordsSimple(application *app.App, records []record.Record) error {
	if len(records) == 0 {
		fmt.Println("Записи не найдены")
		return nil
	}

	s := application.Schema()
	title := color.New(color.Bold)

	fmt.Printf("Найдено записей: %d\n\n", len(records))

	for _, rec := range records {
		display := application.DisplayRecord(rec)
		id, _ := rec.ID(s)

		name := display[s.IDField()]
		for _, f := range s.Fields {
			if f.Kind == schema.KindText {
				name = display[f.Name]
				break
			}
		}
		if name == "" {
			name = "Без названия"
		}

		title.Printf("%d. %s\n", id, name)
		for _, f := range s.Fields {
			if f.Kind == schema.KindIdentifier || f.Kind == schema.KindImage {
				continue
			}
			if v := display[f.Name]; v != "" {
				fmt.Printf("   %s: %s\n", f.Label, v)
			}
		}
		if hasImage(rec, s) {
			fmt.Println("   [есть изображение]")
		}
		fmt.Println()
	}

	return nil
}

func printRecordsTable(application *app.App, records []record.Record) error {
	if len(records) == 0 {
		fmt.Println("Записи не найдены")
		return nil
	}

	s := application.Schema()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	for _, f := range tableFields(s) {
		fmt.Fprintf(w, "%s\t", f.Label)
	}
	fmt.Fprintln(w)
	for range tableFields(s) {
		fmt.Fprintf(w, "---\t")
	}
	fmt.Fprintln(w)

	for _, rec := range records {
		display := application.DisplayRecord(rec)
		for _, f := range tableFields(s) {
			fmt.Fprintf(w, "%s\t", truncate(display[f.Name], 30))
		}
		fmt.Fprintln(w)
	}

	w.Flush()
	fmt.Printf("\nВсего записей: %d\n", len(records))
	return nil
}

func printRecordsJSON(records []record.Record) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

// tableFields возвращает колонки таблицы: все поля кроме изображений и
// многострочного текста.
func tableFields(s *schema.Schema) []schema.FieldDescriptor {
	fields := make([]schema.FieldDescriptor, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Kind == schema.KindImage || f.Kind == schema.KindTextarea {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

func hasImage(rec record.Record, s *schema.Schema) bool {
	for _, f := range s.Fields {
		if f.Kind != schema.KindImage {
			continue
		}
		if v, ok := rec[f.Name].(string); ok && v != "" {
			return true
		}
	}
	return false
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length-3]) + "..."
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "simple", "формат вывода (simple, table, json)")
}
