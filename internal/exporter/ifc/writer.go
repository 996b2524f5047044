package ifc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/units"
)

// ============================================================
// IFC4 STEP Writer
// ============================================================

// Writer сериализует документ в текстовый STEP (ISO-10303-21,
// схема IFC4). Номера сущностей монотонно растут и не переиспользуются.
type Writer struct {
	buf bytes.Buffer
	id  int
	sys units.System

	ctx     int // geometric representation context
	dirZ    int
	history string // OwnerHistory всегда пустой
}

// WriteFile сериализует документ в файл.
func WriteFile(path string, doc *models.Document, sys units.System) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ifc file: %w", err)
	}
	defer f.Close()
	return Write(f, doc, sys)
}

// Write пишет полный обменный документ: заголовок, контекст,
// единицы, пространственное дерево, элементы, проемы и свойства.
func Write(w io.Writer, doc *models.Document, sys units.System) error {
	wr := &Writer{sys: sys, history: "$"}
	wr.header(doc)
	wr.body(doc)
	wr.footer()
	_, err := w.Write(wr.buf.Bytes())
	return err
}

// add пишет одну сущность и возвращает ее номер.
func (w *Writer) add(format string, args ...any) int {
	w.id++
	fmt.Fprintf(&w.buf, "#%d=%s;\n", w.id, fmt.Sprintf(format, args...))
	return w.id
}

func (w *Writer) header(doc *models.Document) {
	name := "export"
	if doc.Project != nil {
		name = doc.Project.Name
	}
	ts := time.Now().Format("2006-01-02T15:04:05")
	w.buf.WriteString("ISO-10303-21;\n")
	w.buf.WriteString("HEADER;\n")
	fmt.Fprintf(&w.buf, "FILE_DESCRIPTION(('ViewDefinition [CoordinationView]'),'2;1');\n")
	fmt.Fprintf(&w.buf, "FILE_NAME('%s','%s',('BubbleBIM'),('BubbleBIM'),'BubbleBIM exporter','BubbleBIM exporter','');\n",
		escape(name), ts)
	w.buf.WriteString("FILE_SCHEMA(('IFC4'));\n")
	w.buf.WriteString("ENDSEC;\n")
	w.buf.WriteString("DATA;\n")
}

func (w *Writer) footer() {
	w.buf.WriteString("ENDSEC;\n")
	w.buf.WriteString("END-ISO-10303-21;\n")
}

func (w *Writer) body(doc *models.Document) {
	origin := w.add("IFCCARTESIANPOINT((0.,0.,0.))")
	w.dirZ = w.add("IFCDIRECTION((0.,0.,1.))")
	worldAxis := w.add("IFCAXIS2PLACEMENT3D(#%d,$,$)", origin)
	w.ctx = w.add("IFCGEOMETRICREPRESENTATIONCONTEXT($,'Model',3,1.E-05,#%d,$)", worldAxis)
	unitAssign := w.unitAssignment()

	project := doc.Project
	if project == nil {
		return
	}
	projectID := w.add("IFCPROJECT('%s',%s,'%s',$,$,$,$,(#%d),#%d)",
		NewGlobalID(), w.history, escape(project.Name), w.ctx, unitAssign)

	sitePlacement := w.localPlacement(0, models.Placement{})
	var siteID, buildingID int
	var buildingPlacement int
	for _, site := range project.Children {
		siteID = w.add("IFCSITE('%s',%s,'%s',$,$,#%d,$,$,.ELEMENT.,$,$,$,$,$)",
			NewGlobalID(), w.history, escape(site.Name), sitePlacement)
		w.relAggregates("ProjectContainer", projectID, []int{siteID})

		buildingPlacement = w.localPlacement(sitePlacement, models.Placement{})
		for _, building := range site.Children {
			buildingID = w.add("IFCBUILDING('%s',%s,'%s',$,$,#%d,$,$,.ELEMENT.,$,$,$)",
				NewGlobalID(), w.history, escape(building.Name), buildingPlacement)
			w.relAggregates("SiteContainer", siteID, []int{buildingID})

			var storeyIDs []int
			for _, storey := range building.Children {
				storeyIDs = append(storeyIDs, w.storey(buildingPlacement, buildingID, storey))
			}
			if len(storeyIDs) > 0 {
				w.relAggregates("BuildingContainer", buildingID, storeyIDs)
			}
		}
	}
}

// storey пишет этаж, его элементы и их проемы/свойства.
func (w *Writer) storey(parentPlacement, buildingID int, storey *models.SpatialNode) int {
	placement := w.localPlacement(parentPlacement, models.Placement{Z: storey.Elevation})
	storeyID := w.add("IFCBUILDINGSTOREY('%s',%s,'%s',$,$,#%d,$,$,.ELEMENT.,%s)",
		NewGlobalID(), w.history, escape(storey.Name), placement, real(storey.Elevation))

	var contained []int
	for _, elem := range storey.Elements {
		contained = append(contained, w.element(placement, elem))
	}
	if len(contained) > 0 {
		refs := make([]string, len(contained))
		for i, id := range contained {
			refs[i] = fmt.Sprintf("#%d", id)
		}
		w.add("IFCRELCONTAINEDINSPATIALSTRUCTURE('%s',%s,'StoreyContainer',$,(%s),#%d)",
			NewGlobalID(), w.history, strings.Join(refs, ","), storeyID)
	}
	return storeyID
}

// element пишет продукт с геометрией, проемами и набором свойств.
func (w *Writer) element(storeyPlacement int, elem *models.Element) int {
	placement := w.localPlacement(storeyPlacement, elem.Placement)

	shape := "$"
	if elem.Geometry != nil {
		shape = fmt.Sprintf("#%d", w.productShape(elem.Geometry))
	}

	base := fmt.Sprintf("'%s',%s,'%s',$,$,#%d,%s",
		NewGlobalID(), w.history, escape(elem.Name), placement, shape)
	elemID := w.add("%s(%s%s)", strings.ToUpper(string(elem.Type)), base, tailAttrs(elem.Type))

	for _, op := range elem.Openings {
		w.opening(placement, elemID, op)
	}
	if elem.Pset != nil {
		w.propertySet(elemID, elem.Pset)
	}
	return elemID
}

// tailAttrs — атрибуты после Representation для каждого типа продукта.
func tailAttrs(t models.ElementType) string {
	switch t {
	case models.ElemWindow:
		// Tag, OverallHeight, OverallWidth, PredefinedType, PartitioningType, UserDefined
		return ",$,$,$,.NOTDEFINED.,.NOTDEFINED.,$"
	case models.ElemDoor:
		// Tag, OverallHeight, OverallWidth, PredefinedType, OperationType, UserDefined
		return ",$,$,$,.NOTDEFINED.,.NOTDEFINED.,$"
	case models.ElemSpace:
		// LongName, CompositionType, PredefinedType, ElevationWithFlooring
		return ",$,.ELEMENT.,.INTERNAL.,$"
	default:
		// Tag, PredefinedType
		return ",$,.NOTDEFINED."
	}
}

// opening пишет IFCOPENINGELEMENT и связь вычитания с носителем.
func (w *Writer) opening(elemPlacement, elemID int, op models.Opening) {
	placement := w.localPlacement(elemPlacement, models.Placement{})
	shape := "$"
	if op.Geometry != nil {
		shape = fmt.Sprintf("#%d", w.productShape(op.Geometry))
	}
	openingID := w.add("IFCOPENINGELEMENT('%s',%s,'%s',$,$,#%d,%s,$,.OPENING.)",
		NewGlobalID(), w.history, escape(op.Name), placement, shape)
	w.add("IFCRELVOIDSELEMENT('%s',%s,$,$,#%d,#%d)",
		NewGlobalID(), w.history, elemID, openingID)
}

// productShape строит представление геометрии: SweptSolid для
// экструзий, Curve2D для плоских контуров и окружностей.
func (w *Writer) productShape(g *models.Geometry) int {
	var rep int
	switch g.Kind {
	case models.GeomSolid:
		poly := w.polyline(g.Profile)
		profile := w.add("IFCARBITRARYCLOSEDPROFILEDEF(.AREA.,$,#%d)", poly)
		origin := w.add("IFCCARTESIANPOINT((0.,0.,0.))")
		axis := w.add("IFCAXIS2PLACEMENT3D(#%d,$,$)", origin)
		solid := w.add("IFCEXTRUDEDAREASOLID(#%d,#%d,#%d,%s)", profile, axis, w.dirZ, real(g.Depth))
		rep = w.add("IFCSHAPEREPRESENTATION(#%d,'Body','SweptSolid',(#%d))", w.ctx, solid)

	case models.GeomCircle:
		center := w.add("IFCCARTESIANPOINT((%s,%s))", real(g.Center.X), real(g.Center.Y))
		axis := w.add("IFCAXIS2PLACEMENT2D(#%d,$)", center)
		circle := w.add("IFCCIRCLE(#%d,%s)", axis, real(g.Radius))
		rep = w.add("IFCSHAPEREPRESENTATION(#%d,'FootPrint','Curve2D',(#%d))", w.ctx, circle)

	default: // GeomCurve
		poly := w.polyline(g.Profile)
		rep = w.add("IFCSHAPEREPRESENTATION(#%d,'FootPrint','Curve2D',(#%d))", w.ctx, poly)
	}
	return w.add("IFCPRODUCTDEFINITIONSHAPE($,$,(#%d))", rep)
}

func (w *Writer) polyline(profile []models.Point) int {
	refs := make([]string, len(profile))
	for i, p := range profile {
		id := w.add("IFCCARTESIANPOINT((%s,%s))", real(p.X), real(p.Y))
		refs[i] = fmt.Sprintf("#%d", id)
	}
	return w.add("IFCPOLYLINE((%s))", strings.Join(refs, ","))
}

// propertySet пишет одиночные значения, набор и связь с элементом.
func (w *Writer) propertySet(elemID int, ps *models.PropertySet) {
	var refs []string
	for _, p := range ps.Props {
		refs = append(refs, fmt.Sprintf("#%d", w.singleValue(p)))
	}
	psetID := w.add("IFCPROPERTYSET('%s',%s,'%s',$,(%s))",
		NewGlobalID(), w.history, escape(ps.Name), strings.Join(refs, ","))
	w.add("IFCRELDEFINESBYPROPERTIES('%s',%s,$,$,(#%d),#%d)",
		NewGlobalID(), w.history, elemID, psetID)
}

func (w *Writer) singleValue(p models.Property) int {
	var val string
	switch p.Value.Kind {
	case models.PropLength:
		val = fmt.Sprintf("IFCLENGTHMEASURE(%s)", real(p.Value.Number))
	case models.PropArea:
		val = fmt.Sprintf("IFCAREAMEASURE(%s)", real(p.Value.Number))
	case models.PropVolume:
		val = fmt.Sprintf("IFCVOLUMEMEASURE(%s)", real(p.Value.Number))
	case models.PropInteger:
		val = fmt.Sprintf("IFCINTEGER(%d)", p.Value.Int)
	case models.PropReal:
		val = fmt.Sprintf("IFCREAL(%s)", real(p.Value.Number))
	default:
		val = fmt.Sprintf("IFCTEXT('%s')", escape(p.Value.Text))
	}
	return w.add("IFCPROPERTYSINGLEVALUE('%s',$,%s,$)", escape(p.Name), val)
}

// unitAssignment пишет единицы проекта: СИ для метрической системы,
// conversion-based FOOT для имперской.
func (w *Writer) unitAssignment() int {
	areaUnit := w.add("IFCSIUNIT(*,.AREAUNIT.,$,.SQUARE_METRE.)")
	volumeUnit := w.add("IFCSIUNIT(*,.VOLUMEUNIT.,$,.CUBIC_METRE.)")

	var lengthUnit int
	if w.sys.IsMetric() {
		lengthUnit = w.add("IFCSIUNIT(*,.LENGTHUNIT.,$,.METRE.)")
	} else {
		metre := w.add("IFCSIUNIT(*,.LENGTHUNIT.,$,.METRE.)")
		dims := w.add("IFCDIMENSIONALEXPONENTS(1,0,0,0,0,0,0)")
		measure := w.add("IFCMEASUREWITHUNIT(IFCLENGTHMEASURE(0.3048),#%d)", metre)
		lengthUnit = w.add("IFCCONVERSIONBASEDUNIT(#%d,.LENGTHUNIT.,'FOOT',#%d)", dims, measure)
	}
	return w.add("IFCUNITASSIGNMENT((#%d,#%d,#%d))", lengthUnit, areaUnit, volumeUnit)
}

// localPlacement строит цепочку размещений; parent == 0 значит мировое.
func (w *Writer) localPlacement(parent int, p models.Placement) int {
	point := w.add("IFCCARTESIANPOINT((%s,%s,%s))", real(p.X), real(p.Y), real(p.Z))
	axis := w.add("IFCAXIS2PLACEMENT3D(#%d,$,$)", point)
	if parent == 0 {
		return w.add("IFCLOCALPLACEMENT($,#%d)", axis)
	}
	return w.add("IFCLOCALPLACEMENT(#%d,#%d)", parent, axis)
}

func (w *Writer) relAggregates(name string, parent int, children []int) {
	refs := make([]string, len(children))
	for i, id := range children {
		refs[i] = fmt.Sprintf("#%d", id)
	}
	w.add("IFCRELAGGREGATES('%s',%s,'%s',$,#%d,(%s))",
		NewGlobalID(), w.history, name, parent, strings.Join(refs, ","))
}

// real форматирует вещественное число в синтаксисе STEP: точка
// обязательна даже у целых значений.
func real(v float64) string {
	s := strconv.FormatFloat(v, 'G', -1, 64)
	if !strings.ContainsAny(s, ".E") {
		s += "."
	}
	return s
}

// escape дублирует апострофы в STEP-строках.
func escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
