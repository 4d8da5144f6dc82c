// cmd/recordbase/cmd/record/save.go
package record

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"recordbase/internal/domain/record"

	"github.com/spf13/cobra"
)

var (
	saveID    int64
	saveSet   []string
	imagePath string
)

var SaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Создать или обновить запись",
	Long: `Создает запись из значений полей либо обновляет существующую при --id.

Значения задаются флагом --set в виде имя=значение, по одному на поле:
  recordbase record save --set name=Widget --set rating=4

Даты принимаются в формате ГГГГ-ММ-ДД. Изображение подставляется из файла
через --image; при обновлении без --image текущее изображение сохраняется.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		values := make(map[string]string, len(saveSet))
		for _, pair := range saveSet {
			name, value, found := strings.Cut(pair, "=")
			if !found {
				return fmt.Errorf("неверный формат --set %q, ожидается имя=значение", pair)
			}
			values[name] = value
		}

		sess := record.EditSession{BoundID: saveID}
		if imagePath != "" {
			dataURI, err := readImage(imagePath)
			if err != nil {
				return fmt.Errorf("ошибка чтения изображения: %w", err)
			}
			sess.PendingImage = dataURI
		}

		rec, _, err := application.SaveRecord(cmd.Context(), values, sess)
		if err != nil {
			if verr, ok := record.AsValidation(err); ok {
				return fmt.Errorf("поле %q: %s", verr.Field, verr.Reason)
			}
			return fmt.Errorf("ошибка сохранения записи: %w", err)
		}

		id, _ := rec.ID(application.Schema())
		if sess.Editing() {
			fmt.Printf("Запись %d обновлена\n", id)
		} else {
			fmt.Printf("Запись создана, ID: %d\n", id)
		}

		return nil
	},
}

// readImage читает файл и возвращает его содержимое как data URI.
func readImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func init() {
	SaveCmd.Flags().Int64Var(&saveID, "id", 0, "ID записи для обновления, 0 - создать новую")
	SaveCmd.Flags().StringArrayVar(&saveSet, "set", nil, "значение поля в виде имя=значение (можно повторять)")
	SaveCmd.Flags().StringVar(&imagePath, "image", "", "путь к файлу изображения")
}
