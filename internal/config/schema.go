package config

import (
	"fmt"

	"github.com/spf13/viper"

	"recordbase/internal/domain/schema"
)

// LoadSchema читает схему полей из файла (yaml или json). Пустой путь
// означает встроенную схему по умолчанию. Неизвестные типы полей
// отклоняются здесь, при загрузке, а не в кодеке.
func LoadSchema(path string) (*schema.Schema, error) {
	if path == "" {
		s := schema.Default()
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return s, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("ошибка чтения файла схемы: %w", err)
	}

	var s schema.Schema
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла схемы: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
