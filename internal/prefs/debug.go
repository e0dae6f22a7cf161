package prefs

import "github.com/eugenenazirov/prefstore/internal/settings"

// DebugPrefix namespaces the debug preference keys.
const DebugPrefix = "debug_"

// DebugPreferences holds rendering diagnostics. The group is persisted only
// while the host runs in debug mode.
type DebugPreferences struct {
	*settings.FieldSet

	renderHitBoxes         bool
	renderCollisionBoxes   bool
	renderEntityNames      bool
	logDetailedRenderTimes bool
	showTilesMetric        bool
}

// NewDebugPreferences returns the debug preferences with everything off.
func NewDebugPreferences() *DebugPreferences {
	p := &DebugPreferences{FieldSet: settings.NewFieldSet(DebugPrefix, true)}
	p.Bool("renderHitBoxes", &p.renderHitBoxes)
	p.Bool("renderCollisionBoxes", &p.renderCollisionBoxes)
	p.Bool("renderEntityNames", &p.renderEntityNames)
	p.Bool("logDetailedRenderTimes", &p.logDetailedRenderTimes)
	p.Bool("showTilesMetric", &p.showTilesMetric)
	return p
}

func (p *DebugPreferences) RenderHitBoxes() bool     { return p.renderHitBoxes }
func (p *DebugPreferences) SetRenderHitBoxes(v bool) { p.renderHitBoxes = v }

func (p *DebugPreferences) RenderCollisionBoxes() bool     { return p.renderCollisionBoxes }
func (p *DebugPreferences) SetRenderCollisionBoxes(v bool) { p.renderCollisionBoxes = v }

func (p *DebugPreferences) RenderEntityNames() bool     { return p.renderEntityNames }
func (p *DebugPreferences) SetRenderEntityNames(v bool) { p.renderEntityNames = v }

func (p *DebugPreferences) LogDetailedRenderTimes() bool     { return p.logDetailedRenderTimes }
func (p *DebugPreferences) SetLogDetailedRenderTimes(v bool) { p.logDetailedRenderTimes = v }

func (p *DebugPreferences) ShowTilesMetric() bool     { return p.showTilesMetric }
func (p *DebugPreferences) SetShowTilesMetric(v bool) { p.showTilesMetric = v }
