package stream

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
)

// ============================================================
// Entity Stream Reader
// ============================================================

// envelope — обертка потока сущностей; допускается и голый массив.
type envelope struct {
	Entities []*models.Primitive `json:"entities"`
}

// Read декодирует поток сущностей одного файла.
func Read(r io.Reader) ([]*models.Primitive, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read entity stream: %w", err)
	}

	var prims []*models.Primitive
	if err := json.Unmarshal(data, &prims); err == nil {
		return prims, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode entity stream: %w", err)
	}
	return env.Entities, nil
}

// ReadFile открывает файл и декодирует поток сущностей.
func ReadFile(path string) ([]*models.Primitive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open entity stream: %w", err)
	}
	defer f.Close()
	return Read(f)
}
