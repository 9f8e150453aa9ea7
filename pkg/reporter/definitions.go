package reporter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// File - файл с декларативными отчётами.
//
//	reports:
//	  contact_directory:
//	    title: Contact directory
//	    model: contact
//	    fields: [last_name, first_name, email]
//	    headers:
//	      last_name: Surname
type File struct {
	Reports map[string]FileReport `yaml:"reports"`
}

type FileReport struct {
	Title   string            `yaml:"title"`
	Model   string            `yaml:"model"`
	Fields  []string          `yaml:"fields"`
	Headers map[string]string `yaml:"headers"`
}

// LoadDefinitions читает YAML и регистрирует отчёты в reg. models сопоставляет
// имя модели из файла с её прототипом. Возвращает имена добавленных отчётов.
func LoadDefinitions(r io.Reader, models map[string]any, reg *Registry) ([]string, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("разбор файла отчётов: %w", err)
	}

	names := make([]string, 0, len(file.Reports))
	for name := range file.Reports {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fr := file.Reports[name]
		model, ok := models[fr.Model]
		if !ok {
			return nil, fmt.Errorf("отчёт %q: неизвестная модель %q", name, fr.Model)
		}
		def := Definition{Model: model, Fields: fr.Fields, Headers: fr.Headers}
		if err := reg.Register(name, fr.Title, def); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// LoadDefinitionsFile - LoadDefinitions для файла на диске.
// Отсутствующий файл возвращает os.ErrNotExist, вызывающий решает, ошибка ли это.
func LoadDefinitionsFile(path string, models map[string]any, reg *Registry) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // путь задаётся конфигурацией
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadDefinitions(f, models, reg)
}
