package manifest

import (
	"context"
	"time"
)

// ============================================================
// Run Manifest
// ============================================================

// Model — запись об одном выполненном экспорте.
type Model struct {
	ID           string    `json:"id"`
	ProjectName  string    `json:"project_name"`
	Units        string    `json:"units"`
	SourceKind   string    `json:"source_kind"` // dxf | diagram
	StoreyCount  int       `json:"storey_count"`
	ElementCount int       `json:"element_count"`
	OutputPath   string    `json:"output_path"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store ведет журнал экспортов.
type Store interface {
	Init(ctx context.Context) error
	Record(ctx context.Context, m *Model) error
	List(ctx context.Context) ([]*Model, error)
}
