// cmd/recordbase/cmd/record/delete.go
package record

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Удалить запись",
	Long:  `Удаляет запись по ID. Удаление уже отсутствующей записи не считается ошибкой.`,
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

		if !deleteYes {
			fmt.Printf("Удалить запись %d? [y/N]: ", recordID)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println("Отменено")
				return nil
			}
		}

		if err := application.DeleteRecord(cmd.Context(), recordID); err != nil {
			return fmt.Errorf("ошибка удаления записи: %w", err)
		}

		fmt.Printf("Запись %d удалена\n", recordID)
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "не запрашивать подтверждение")
}
