// cmd/recordbase/cmd/record/get.go
package record

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"recordbase/internal/domain/schema"

	"github.com/spf13/cobra"
)

var outputFormat string

var GetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Просмотреть запись",
	Long:  `Просмотр содержимого записи по ID. Значения полей форматируются по схеме.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		recordID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("неверный ID записи: %w", err)
		}

		rec, err := application.FindRecord(cmd.Context(), recordID)
		if err != nil {
			return fmt.Errorf("ошибка получения записи: %w", err)
		}

		if outputFormat == "json" {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(rec)
		}

		s := application.Schema()
		display := application.DisplayRecord(rec)

		for _, f := range s.Fields {
			if f.Kind == schema.KindImage {
				if display[f.Name] != "" {
					fmt.Printf("%s: [изображение, %d байт]\n", f.Label, len(display[f.Name]))
				}
				continue
			}
			fmt.Printf("%s: %s\n", f.Label, display[f.Name])
		}

		return nil
	},
}

func init() {
	GetCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "формат вывода (text, json)")
}
