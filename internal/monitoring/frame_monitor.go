package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Pass identifies one stage of the frame pipeline.
type Pass int

const (
	PassFloor Pass = iota
	PassWalls
	PassSprites
	PassPresent
	passCount
)

var passNames = [passCount]string{"floor", "walls", "sprites", "present"}

func (p Pass) String() string {
	if p < 0 || p >= passCount {
		return "unknown"
	}
	return passNames[p]
}

// FrameMonitor tracks per-frame timings and renderer counters. Writers are
// the frame loop; readers (inspection server, logs) may run concurrently.
type FrameMonitor struct {
	// Frame metrics
	frameCount     atomic.Uint64
	frameTime      atomic.Uint64 // nanoseconds, last frame
	totalFrameTime atomic.Uint64 // nanoseconds, since Reset

	passTime [passCount]atomic.Uint64 // nanoseconds, last frame

	// Renderer counters, last frame
	wallHits     atomic.Int32
	spritesDrawn atomic.Int32
	culled       atomic.Int32
	occluded     atomic.Int32
	overlays     atomic.Int32
	purged       atomic.Int32

	// Renderer counters, cumulative
	impacts       atomic.Uint64
	totalPurged   atomic.Uint64
	liveSprites   atomic.Int32
	peakSpriteCnt atomic.Int32

	mutex          sync.RWMutex
	avgFrameTime   float64
	startTime      time.Time
	enableDetailed bool
	fpsFloor       float64
}

// NewFrameMonitor creates a monitor that alerts below 30 FPS.
func NewFrameMonitor() *FrameMonitor {
	return &FrameMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
		fpsFloor:       30,
	}
}

// FrameTimer measures one frame from StartFrame to EndFrame.
type FrameTimer struct {
	monitor   *FrameMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (fm *FrameMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{monitor: fm, startTime: time.Now()}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() time.Duration {
	d := time.Since(ft.startTime)
	fm := ft.monitor
	fm.frameTime.Store(uint64(d.Nanoseconds()))
	total := fm.totalFrameTime.Add(uint64(d.Nanoseconds()))
	count := fm.frameCount.Add(1)

	if fm.detailed() {
		fm.mutex.Lock()
		fm.avgFrameTime = float64(total) / float64(count)
		fm.mutex.Unlock()
	}
	return d
}

func (fm *FrameMonitor) detailed() bool {
	fm.mutex.RLock()
	defer fm.mutex.RUnlock()
	return fm.enableDetailed
}

// TimePass runs fn and records its duration against pass.
func (fm *FrameMonitor) TimePass(pass Pass, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if pass >= 0 && pass < passCount {
		fm.passTime[pass].Store(uint64(d.Nanoseconds()))
	}
	return d
}

// FrameCounts is what the renderer reports after each frame.
type FrameCounts struct {
	WallHits    int
	Drawn       int
	Culled      int
	Occluded    int
	Overlays    int
	Impacts     int
	Purged      int
	LiveSprites int
}

// RecordCounts stores the latest renderer counters.
func (fm *FrameMonitor) RecordCounts(c FrameCounts) {
	fm.wallHits.Store(int32(c.WallHits))
	fm.spritesDrawn.Store(int32(c.Drawn))
	fm.culled.Store(int32(c.Culled))
	fm.occluded.Store(int32(c.Occluded))
	fm.overlays.Store(int32(c.Overlays))
	fm.purged.Store(int32(c.Purged))
	fm.impacts.Add(uint64(c.Impacts))
	fm.totalPurged.Add(uint64(c.Purged))
	fm.liveSprites.Store(int32(c.LiveSprites))
	for {
		peak := fm.peakSpriteCnt.Load()
		if int32(c.LiveSprites) <= peak || fm.peakSpriteCnt.CompareAndSwap(peak, int32(c.LiveSprites)) {
			break
		}
	}
}

// Stats is a point-in-time copy of the monitor, shaped for JSON.
type Stats struct {
	Frames          uint64             `json:"frames"`
	FrameTimeMs     float64            `json:"frame_time_ms"`
	AvgFrameTimeMs  float64            `json:"avg_frame_time_ms"`
	FPS             float64            `json:"fps"`
	PassTimeMs      map[string]float64 `json:"pass_time_ms"`
	WallHits        int32              `json:"wall_hits"`
	SpritesDrawn    int32              `json:"sprites_drawn"`
	SpritesCulled   int32              `json:"sprites_culled"`
	SpritesOccluded int32              `json:"sprites_occluded"`
	Overlays        int32              `json:"overlays"`
	Purged          int32              `json:"purged"`
	TotalPurged     uint64             `json:"total_purged"`
	Impacts         uint64             `json:"impacts"`
	LiveSprites     int32              `json:"live_sprites"`
	PeakSprites     int32              `json:"peak_sprites"`
	UptimeSeconds   float64            `json:"uptime_seconds"`
}

// Snapshot returns the current metrics.
func (fm *FrameMonitor) Snapshot() Stats {
	fm.mutex.RLock()
	avg := fm.avgFrameTime
	start := fm.startTime
	fm.mutex.RUnlock()

	frameTime := fm.frameTime.Load()
	fps := 0.0
	if frameTime > 0 {
		fps = float64(time.Second) / float64(frameTime)
	}

	passes := make(map[string]float64, passCount)
	for p := Pass(0); p < passCount; p++ {
		passes[p.String()] = float64(fm.passTime[p].Load()) / float64(time.Millisecond)
	}

	return Stats{
		Frames:          fm.frameCount.Load(),
		FrameTimeMs:     float64(frameTime) / float64(time.Millisecond),
		AvgFrameTimeMs:  avg / float64(time.Millisecond),
		FPS:             fps,
		PassTimeMs:      passes,
		WallHits:        fm.wallHits.Load(),
		SpritesDrawn:    fm.spritesDrawn.Load(),
		SpritesCulled:   fm.culled.Load(),
		SpritesOccluded: fm.occluded.Load(),
		Overlays:        fm.overlays.Load(),
		Purged:          fm.purged.Load(),
		TotalPurged:     fm.totalPurged.Load(),
		Impacts:         fm.impacts.Load(),
		LiveSprites:     fm.liveSprites.Load(),
		PeakSprites:     fm.peakSpriteCnt.Load(),
		UptimeSeconds:   time.Since(start).Seconds(),
	}
}

// GetDetailedStats returns the snapshot plus runtime memory figures.
func (fm *FrameMonitor) GetDetailedStats() map[string]interface{} {
	s := fm.Snapshot()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"uptime_seconds":    s.UptimeSeconds,
		"frame_count":       s.Frames,
		"avg_frame_time_ms": s.AvgFrameTimeMs,
		"current_fps":       s.FPS,
		"pass_time_ms":      s.PassTimeMs,
		"sprites_drawn":     s.SpritesDrawn,
		"live_sprites":      s.LiveSprites,
		"impacts":           s.Impacts,
		"memory_alloc_mb":   memStats.Alloc / 1024 / 1024,
		"gc_cycles":         memStats.NumGC,
		"goroutines":        runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts reports a low frame rate and a sprite pass that
// dominates the frame.
func (fm *FrameMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	now := time.Now()

	fm.mutex.RLock()
	floor := fm.fpsFloor
	fm.mutex.RUnlock()

	frameTime := fm.frameTime.Load()
	if frameTime > 0 {
		fps := float64(time.Second) / float64(frameTime)
		if fps < floor {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below target",
				Value:     fps,
				Threshold: floor,
				Timestamp: now,
			})
		}

		sprites := fm.passTime[PassSprites].Load()
		if share := float64(sprites) / float64(frameTime); share > 0.5 {
			alerts = append(alerts, PerformanceAlert{
				Type:      "sprite_pass",
				Message:   "Sprite compositing takes more than half the frame",
				Value:     share,
				Threshold: 0.5,
				Timestamp: now,
			})
		}
	}

	return alerts
}

// SetFPSFloor changes the frame rate below which low_fps alerts fire.
func (fm *FrameMonitor) SetFPSFloor(fps float64) {
	fm.mutex.Lock()
	defer fm.mutex.Unlock()
	fm.fpsFloor = fps
}

// EnableDetailedLogging enables/disables running averages
func (fm *FrameMonitor) EnableDetailedLogging(enabled bool) {
	fm.mutex.Lock()
	defer fm.mutex.Unlock()
	fm.enableDetailed = enabled
}

// Reset resets all performance counters
func (fm *FrameMonitor) Reset() {
	fm.frameCount.Store(0)
	fm.frameTime.Store(0)
	fm.totalFrameTime.Store(0)
	for p := range fm.passTime {
		fm.passTime[p].Store(0)
	}
	fm.wallHits.Store(0)
	fm.spritesDrawn.Store(0)
	fm.culled.Store(0)
	fm.occluded.Store(0)
	fm.overlays.Store(0)
	fm.purged.Store(0)
	fm.impacts.Store(0)
	fm.totalPurged.Store(0)
	fm.liveSprites.Store(0)
	fm.peakSpriteCnt.Store(0)

	fm.mutex.Lock()
	fm.avgFrameTime = 0
	fm.startTime = time.Now()
	fm.mutex.Unlock()
}
