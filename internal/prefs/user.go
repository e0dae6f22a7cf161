package prefs

import "github.com/eugenenazirov/prefstore/internal/settings"

// UserPrefix namespaces the user preference keys.
const UserPrefix = "user_"

const (
	UIScaleMin = 0.5
	UIScaleMax = 2.0

	defaultGridColor = "#dcdcdc"
)

// UserPreferences holds the editor's per-user view and layout settings.
type UserPreferences struct {
	*settings.FieldSet

	zoom                   float32
	showGrid               bool
	clampToMap             bool
	snapToPixels           bool
	snapToGrid             bool
	renderBoundingBoxes    bool
	renderCustomMapObjects bool
	renderMapIDs           bool
	renderNames            bool
	compressFile           bool
	syncMaps               bool
	frameState             int
	mainSplitter           int
	selectionEditSplitter  int
	mapPanelSplitter       int
	bottomSplitter         int
	assetsSplitter         int
	width                  int
	height                 int
	gridLineWidth          float32
	gridColor              string
	snapDivision           int
	lastGameFile           string
	lastOpenedFiles        *RecentFiles
	uiScale                float32
	theme                  Theme
}

// NewUserPreferences returns the user preferences at their defaults.
func NewUserPreferences() *UserPreferences {
	p := &UserPreferences{
		FieldSet:            settings.NewFieldSet(UserPrefix, false),
		zoom:                1,
		showGrid:            true,
		clampToMap:          true,
		snapToPixels:        true,
		snapToGrid:          true,
		renderBoundingBoxes: true,
		renderNames:         true,
		gridLineWidth:       1,
		gridColor:           defaultGridColor,
		snapDivision:        1,
		lastGameFile:        ".",
		lastOpenedFiles:     NewRecentFiles(MaxRecentFiles),
		theme:               ThemeDark,
	}
	p.SetUIScale(1)

	p.Float32("zoom", &p.zoom)
	p.Bool("showGrid", &p.showGrid)
	p.Bool("clampToMap", &p.clampToMap)
	p.Bool("snapToPixels", &p.snapToPixels)
	p.Bool("snapToGrid", &p.snapToGrid)
	p.Bool("renderBoundingBoxes", &p.renderBoundingBoxes)
	p.Bool("renderCustomMapObjects", &p.renderCustomMapObjects)
	p.Bool("renderMapIds", &p.renderMapIDs)
	p.Bool("renderNames", &p.renderNames)
	p.Bool("compressFile", &p.compressFile)
	p.Bool("syncMaps", &p.syncMaps)
	p.Int("frameState", &p.frameState)
	p.Int("mainSplitter", &p.mainSplitter)
	p.Int("selectionEditSplitter", &p.selectionEditSplitter)
	p.Int("mapPanelSplitter", &p.mapPanelSplitter)
	p.Int("bottomSplitter", &p.bottomSplitter)
	p.Int("assetsSplitter", &p.assetsSplitter)
	p.Int("width", &p.width)
	p.Int("height", &p.height)
	p.Float32("gridLineWidth", &p.gridLineWidth)
	p.Text("gridColor", &p.gridColor)
	p.Int("snapDivision", &p.snapDivision)
	p.Path("lastGameFile", &p.lastGameFile)
	p.List("lastOpenedFiles", MaxRecentFiles, p.lastOpenedFiles.Paths, p.lastOpenedFiles.restore)
	p.Float32Func("uiScale", p.UIScale, p.SetUIScale)
	p.Var("theme", &p.theme)

	return p
}

func (p *UserPreferences) Zoom() float32     { return p.zoom }
func (p *UserPreferences) SetZoom(z float32) { p.zoom = z }

func (p *UserPreferences) ShowGrid() bool     { return p.showGrid }
func (p *UserPreferences) SetShowGrid(v bool) { p.showGrid = v }

func (p *UserPreferences) ClampToMap() bool     { return p.clampToMap }
func (p *UserPreferences) SetClampToMap(v bool) { p.clampToMap = v }

func (p *UserPreferences) SnapToPixels() bool     { return p.snapToPixels }
func (p *UserPreferences) SetSnapToPixels(v bool) { p.snapToPixels = v }

func (p *UserPreferences) SnapToGrid() bool     { return p.snapToGrid }
func (p *UserPreferences) SetSnapToGrid(v bool) { p.snapToGrid = v }

func (p *UserPreferences) RenderBoundingBoxes() bool     { return p.renderBoundingBoxes }
func (p *UserPreferences) SetRenderBoundingBoxes(v bool) { p.renderBoundingBoxes = v }

func (p *UserPreferences) RenderCustomMapObjects() bool     { return p.renderCustomMapObjects }
func (p *UserPreferences) SetRenderCustomMapObjects(v bool) { p.renderCustomMapObjects = v }

func (p *UserPreferences) RenderMapIDs() bool     { return p.renderMapIDs }
func (p *UserPreferences) SetRenderMapIDs(v bool) { p.renderMapIDs = v }

func (p *UserPreferences) RenderNames() bool     { return p.renderNames }
func (p *UserPreferences) SetRenderNames(v bool) { p.renderNames = v }

func (p *UserPreferences) CompressFile() bool     { return p.compressFile }
func (p *UserPreferences) SetCompressFile(v bool) { p.compressFile = v }

func (p *UserPreferences) SyncMaps() bool     { return p.syncMaps }
func (p *UserPreferences) SetSyncMaps(v bool) { p.syncMaps = v }

func (p *UserPreferences) FrameState() int     { return p.frameState }
func (p *UserPreferences) SetFrameState(v int) { p.frameState = v }

func (p *UserPreferences) MainSplitter() int     { return p.mainSplitter }
func (p *UserPreferences) SetMainSplitter(v int) { p.mainSplitter = v }

func (p *UserPreferences) SelectionEditSplitter() int     { return p.selectionEditSplitter }
func (p *UserPreferences) SetSelectionEditSplitter(v int) { p.selectionEditSplitter = v }

func (p *UserPreferences) MapPanelSplitter() int     { return p.mapPanelSplitter }
func (p *UserPreferences) SetMapPanelSplitter(v int) { p.mapPanelSplitter = v }

func (p *UserPreferences) BottomSplitter() int     { return p.bottomSplitter }
func (p *UserPreferences) SetBottomSplitter(v int) { p.bottomSplitter = v }

func (p *UserPreferences) AssetsSplitter() int     { return p.assetsSplitter }
func (p *UserPreferences) SetAssetsSplitter(v int) { p.assetsSplitter = v }

func (p *UserPreferences) Width() int     { return p.width }
func (p *UserPreferences) SetWidth(v int) { p.width = v }

func (p *UserPreferences) Height() int     { return p.height }
func (p *UserPreferences) SetHeight(v int) { p.height = v }

func (p *UserPreferences) GridLineWidth() float32     { return p.gridLineWidth }
func (p *UserPreferences) SetGridLineWidth(v float32) { p.gridLineWidth = v }

// GridColor returns the grid colour as an encoded hex string.
func (p *UserPreferences) GridColor() string     { return p.gridColor }
func (p *UserPreferences) SetGridColor(v string) { p.gridColor = v }

func (p *UserPreferences) SnapDivision() int     { return p.snapDivision }
func (p *UserPreferences) SetSnapDivision(v int) { p.snapDivision = v }

func (p *UserPreferences) LastGameFile() string     { return p.lastGameFile }
func (p *UserPreferences) SetLastGameFile(v string) { p.lastGameFile = v }

// RecentFiles returns the recently opened files, most recent first.
func (p *UserPreferences) RecentFiles() *RecentFiles {
	return p.lastOpenedFiles
}

// AddOpenedFile records path as the most recently opened file.
func (p *UserPreferences) AddOpenedFile(path string) {
	p.lastOpenedFiles.Add(path)
}

// ClearOpenedFiles forgets all recently opened files.
func (p *UserPreferences) ClearOpenedFiles() {
	p.lastOpenedFiles.Clear()
}

func (p *UserPreferences) UIScale() float32 { return p.uiScale }

// SetUIScale sets the UI scale, clamped to [UIScaleMin, UIScaleMax].
func (p *UserPreferences) SetUIScale(v float32) {
	p.uiScale = min(max(v, UIScaleMin), UIScaleMax)
}

func (p *UserPreferences) Theme() Theme     { return p.theme }
func (p *UserPreferences) SetTheme(v Theme) { p.theme = v }
