// cmd/recordbase/cmd/init.go
package cmd

import (
	"recordbase/cmd/recordbase/cmd/record"
)

func init() {
	// Команды работы с записями
	rootCmd.AddCommand(record.RecordCmd)
	record.RecordCmd.AddCommand(record.ListCmd)
	record.RecordCmd.AddCommand(record.GetCmd)
	record.RecordCmd.AddCommand(record.SaveCmd)
	record.RecordCmd.AddCommand(record.DeleteCmd)
	record.RecordCmd.AddCommand(record.SearchCmd)

	// Перенос данных и сервер
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
}
