package handlers

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/ionuting/BubbleBIM-Comunity/internal/common/config"
	"github.com/ionuting/BubbleBIM-Comunity/internal/diagram"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/ifc"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/levels"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/mesh"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/pipeline"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/stream"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/units"
	"github.com/ionuting/BubbleBIM-Comunity/internal/manifest"
	"github.com/ionuting/BubbleBIM-Comunity/pkg/logger"
)

// ============================================================
// Convert Handlers
// ============================================================

type Handler struct {
	cfg   *config.Config
	store manifest.Store
}

func New(cfg *config.Config, store manifest.Store) *Handler {
	return &Handler{cfg: cfg, store: store}
}

// ConvertIFC принимает поток сущностей (multipart-поле files, можно
// несколько) и отдает собранный IFC. Файлы обрабатываются в порядке
// возрастания отметки из имени; файл без пригодных примитивов
// пропускается с предупреждением.
func (h *Handler) ConvertIFC(c fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "multipart/form-data required",
		})
	}
	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "files field required",
		})
	}

	sys, err := units.Parse(formValue(form, "units", h.cfg.DefaultUnits))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	project := formValue(form, "project", h.cfg.ProjectName)

	sort.SliceStable(files, func(i, j int) bool {
		return levels.FromIdentifier(files[i].Filename) < levels.FromIdentifier(files[j].Filename)
	})

	exp := pipeline.New(project, sys)
	processed := 0
	for _, fh := range files {
		prims, err := readEntityStream(fh)
		if err != nil {
			logger.Warn("skipping unreadable stream", "file", fh.Filename, "err", err)
			continue
		}
		if err := exp.ProcessFile(fh.Filename, prims); err != nil {
			logger.Warn("skipping file", "file", fh.Filename, "err", err)
			continue
		}
		processed++
	}
	if processed == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "no file produced any elements",
		})
	}

	doc := exp.Document()
	outPath, err := h.writeIFC(doc, sys)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	h.record(doc, project, sys, "dxf", outPath)

	return sendAttachment(c, outPath)
}

// ConvertDiagram принимает графовую диаграмму (multipart-поле file)
// и отдает GLB; IFC пишется рядом в выходной каталог.
func (h *Handler) ConvertDiagram(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file required in multipart/form-data",
		})
	}
	sys, err := units.Parse(orDefault(c.FormValue("units"), h.cfg.DefaultUnits))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	project := orDefault(c.FormValue("project"), h.cfg.ProjectName)

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer f.Close()

	d, err := diagram.Parse(f)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	diagram.ResolvePolygons(d)

	exp := pipeline.New(project, sys)
	if err := exp.ProcessDiagram(d); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	doc := exp.Document()
	ifcPath, err := h.writeIFC(doc, sys)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	glbPath := ifcPath[:len(ifcPath)-len(".ifc")] + ".glb"
	if err := mesh.WriteGLB(glbPath, mesh.BuildScene(doc)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	h.record(doc, project, sys, "diagram", glbPath)

	return sendAttachment(c, glbPath)
}

// ListModels отдает журнал выполненных экспортов.
func (h *Handler) ListModels(c fiber.Ctx) error {
	items, err := h.store.List(context.Background())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if items == nil {
		items = []*manifest.Model{}
	}
	return c.JSON(items)
}

func (h *Handler) writeIFC(doc *models.Document, sys units.System) (string, error) {
	if err := os.MkdirAll(h.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir output dir: %w", err)
	}
	path := filepath.Join(h.cfg.OutputDir, uuid.NewString()+".ifc")
	if err := ifc.WriteFile(path, doc, sys); err != nil {
		return "", err
	}
	return path, nil
}

func (h *Handler) record(doc *models.Document, project string, sys units.System, kind, outPath string) {
	err := h.store.Record(context.Background(), &manifest.Model{
		ProjectName:  project,
		Units:        sys.Name,
		SourceKind:   kind,
		StoreyCount:  len(doc.Storeys()),
		ElementCount: doc.ElementCount(),
		OutputPath:   outPath,
	})
	if err != nil {
		logger.Warn("manifest record failed", "err", err)
	}
}

func formValue(form *multipart.Form, key, def string) string {
	if vals := form.Value[key]; len(vals) > 0 && vals[0] != "" {
		return vals[0]
	}
	return def
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func sendAttachment(c fiber.Ctx, path string) error {
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	return c.SendFile(path)
}

func readEntityStream(fh *multipart.FileHeader) ([]*models.Primitive, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return stream.Read(f)
}
