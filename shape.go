package slideview

// Frame is a shape's bounding box on the slide, in EMU.
type Frame struct {
	X  int64
	Y  int64
	CX int64
	CY int64
}

// IsZero reports whether the frame carries no explicit placement.
func (f Frame) IsZero() bool {
	return f.X == 0 && f.Y == 0 && f.CX == 0 && f.CY == 0
}

// FillKind distinguishes how a shape is filled.
type FillKind int

const (
	FillNone FillKind = iota
	FillSolid
	FillGradient
)

// GradientStop is one stop of a linear gradient fill. Position is in [0,1].
type GradientStop struct {
	Position float64
	Color    Color
}

// Fill describes a shape fill. For FillGradient, Angle is the gradient
// direction in degrees (0 = left to right) and Stops is ordered by position.
type Fill struct {
	Kind  FillKind
	Color Color
	Angle float64
	Stops []GradientStop
}

// Line describes a shape outline. Width is in EMU; a zero width with
// Enabled set means "hairline at the renderer's discretion".
type Line struct {
	Enabled bool
	Color   Color
	Width   int64
	Dashed  bool
}

// TextRun is a contiguous span of text sharing one set of character
// properties.
type TextRun struct {
	Text      string
	FontFace  string
	SizePt    float64
	Bold      bool
	Italic    bool
	Underline bool
	Color     Color
	HasColor  bool
}

// Alignment is a paragraph's horizontal alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// Paragraph is one paragraph of shape text.
type Paragraph struct {
	Runs      []TextRun
	Align     Alignment
	Level     int
	Bullet    bool
	LineBreak bool
}

// PlainText concatenates the paragraph's run text.
func (p Paragraph) PlainText() string {
	var s string
	for _, r := range p.Runs {
		s += r.Text
	}
	return s
}

// PlaceholderKind identifies the layout role a shape was assigned by its
// placeholder element, if any.
type PlaceholderKind int

const (
	PlaceholderNone PlaceholderKind = iota
	PlaceholderTitle
	PlaceholderCenterTitle
	PlaceholderSubtitle
	PlaceholderBody
	PlaceholderOther
)

func placeholderKindOf(phType string) PlaceholderKind {
	switch phType {
	case "title":
		return PlaceholderTitle
	case "ctrTitle":
		return PlaceholderCenterTitle
	case "subTitle":
		return PlaceholderSubtitle
	case "body":
		return PlaceholderBody
	case "":
		return PlaceholderNone
	default:
		return PlaceholderOther
	}
}

// IsTitle reports whether the placeholder holds the slide title.
func (k PlaceholderKind) IsTitle() bool {
	return k == PlaceholderTitle || k == PlaceholderCenterTitle
}

// Shape is implemented by every drawable slide element. Shapes appear in the
// slide's Shapes slice in document order, which is also paint order.
type Shape interface {
	ShapeFrame() Frame
	ShapeName() string
}

// GeometryShape is an auto shape: a preset geometry with optional fill,
// outline and text.
type GeometryShape struct {
	Name        string
	Frame       Frame
	Preset      string
	Adjustments map[string]int64
	Fill        Fill
	Line        Line
	Paragraphs  []Paragraph
	Placeholder PlaceholderKind
	Rotation    float64
	FlipH       bool
	FlipV       bool
}

func (s *GeometryShape) ShapeFrame() Frame { return s.Frame }
func (s *GeometryShape) ShapeName() string { return s.Name }

// TextBoxShape is a text body with no visible geometry of its own.
type TextBoxShape struct {
	Name        string
	Frame       Frame
	Fill        Fill
	Paragraphs  []Paragraph
	Placeholder PlaceholderKind
}

func (s *TextBoxShape) ShapeFrame() Frame { return s.Frame }
func (s *TextBoxShape) ShapeName() string { return s.Name }

// CropRect is a source crop in per-mille of the image, as stored by srcRect.
type CropRect struct {
	Left   int64
	Top    int64
	Right  int64
	Bottom int64
}

// IsZero reports whether no cropping applies.
func (c CropRect) IsZero() bool {
	return c.Left == 0 && c.Top == 0 && c.Right == 0 && c.Bottom == 0
}

// PictureShape references an image part through a slide relationship.
type PictureShape struct {
	Name  string
	Frame Frame
	RelID string
	Crop  CropRect
	Line  Line
}

func (s *PictureShape) ShapeFrame() Frame { return s.Frame }
func (s *PictureShape) ShapeName() string { return s.Name }

// TableCell is one cell of a table shape. Merged-away cells keep their slot
// with Merged set so row geometry stays rectangular.
type TableCell struct {
	Paragraphs []Paragraph
	Fill       Fill
	GridSpan   int
	RowSpan    int
	Merged     bool
}

// TableShape is a table hosted in a graphic frame. ColWidths and RowHeights
// are the authored EMU sizes before scaling to the frame.
type TableShape struct {
	Name       string
	Frame      Frame
	ColWidths  []int64
	RowHeights []int64
	Cells      [][]TableCell
	FirstRow   bool
	BandRow    bool
	StyleID    string
}

func (s *TableShape) ShapeFrame() Frame { return s.Frame }
func (s *TableShape) ShapeName() string { return s.Name }

// GraphicFrameShape is a graphic frame hosting content this package does not
// decode, such as a chart or a diagram. The frame still occupies its place
// in the shape tree and renders as a placeholder box.
type GraphicFrameShape struct {
	Name  string
	Frame Frame
	URI   string // graphicData uri of the hosted content
}

func (s *GraphicFrameShape) ShapeFrame() Frame { return s.Frame }
func (s *GraphicFrameShape) ShapeName() string { return s.Name }

// GroupShape nests child shapes under a child-coordinate-space transform.
type GroupShape struct {
	Name       string
	Frame      Frame
	ChildFrame Frame
	Children   []Shape
	Rotation   float64
}

func (s *GroupShape) ShapeFrame() Frame { return s.Frame }
func (s *GroupShape) ShapeName() string { return s.Name }

// Slide is the fully assembled model of one slide.
type Slide struct {
	ID          string
	Index       int
	Title       string
	Notes       string
	Background  Fill
	Shapes      []Shape
	Rels        map[string]Relationship
	TextContent []string

	partPath string
}

// HasTitle reports whether a title placeholder contributed text.
func (s *Slide) HasTitle() bool { return s.Title != "" }
