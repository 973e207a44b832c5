package display

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"

	"github.com/junsooki/AirDroid/internal/display/layout"
	"github.com/junsooki/AirDroid/internal/geom"
	"github.com/junsooki/AirDroid/internal/input"
)

const (
	// in ticks
	keyRepeatDelay    = 30
	keyRepeatInterval = 3

	doubleClickTime = 500 * time.Millisecond
)

var contentColor = color.RGBA{0x20, 0x22, 0x26, 0xff}

var mouseButtons = []struct {
	eb  ebiten.MouseButton
	btn input.MouseButton
}{
	{ebiten.MouseButtonLeft, input.MouseButtonLeft},
	{ebiten.MouseButtonMiddle, input.MouseButtonMiddle},
	{ebiten.MouseButtonRight, input.MouseButtonRight},
	{ebiten.MouseButton3, input.MouseButtonX1},
	{ebiten.MouseButton4, input.MouseButtonX2},
}

// EbitenDisplay is the device window. It implements inputmgr.Screen and
// feeds every captured input event to its EventHandler. All methods run on
// the Ebitengine main goroutine.
type EbitenDisplay struct {
	opts    Options
	handler EventHandler
	vp      layout.Viewport

	stop atomic.Bool

	captured     bool
	resyncCursor bool
	showFPS      bool

	prevMouseX, prevMouseY int
	lastPress              map[input.MouseButton]time.Time
	clicks                 map[input.MouseButton]int
	touches                map[ebiten.TouchID][2]float32

	dropDir string

	// scratch buffers reused every tick
	keys     []ebiten.Key
	runes    []rune
	touchIDs []ebiten.TouchID
}

// NewEbitenDisplay creates the window. Call SetHandler before Run.
func NewEbitenDisplay(opts Options) *EbitenDisplay {
	if opts.Title == "" {
		opts.Title = "AirDroid"
	}
	if opts.MaxWindowW == 0 || opts.MaxWindowH == 0 {
		opts.MaxWindowW, opts.MaxWindowH = 1280, 720
	}
	return &EbitenDisplay{
		opts:         opts,
		vp:           layout.Viewport{Frame: opts.FrameSize},
		resyncCursor: true,
		lastPress:    make(map[input.MouseButton]time.Time),
		clicks:       make(map[input.MouseButton]int),
		touches:      make(map[ebiten.TouchID][2]float32),
	}
}

// SetHandler sets the consumer of captured events.
func (d *EbitenDisplay) SetHandler(h EventHandler) {
	d.handler = h
}

// Run starts the Ebitengine game loop. Must be called from the main goroutine.
func (d *EbitenDisplay) Run() error {
	w, h := layout.OptimalWindow(d.vp.ContentSize(), d.opts.MaxWindowW, d.opts.MaxWindowH)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(d.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(d)
}

// Close removes the files staged from drag and drop.
func (d *EbitenDisplay) Close() error {
	if d.dropDir == "" {
		return nil
	}
	return os.RemoveAll(d.dropDir)
}

// Stop ends Run after the current tick. Safe from any goroutine.
func (d *EbitenDisplay) Stop() {
	d.stop.Store(true)
}

// --- ebiten.Game interface ---

func (d *EbitenDisplay) Update() error {
	if d.stop.Load() {
		return ebiten.Termination
	}
	if d.handler == nil {
		return nil
	}
	if d.captured && !ebiten.IsFocused() {
		d.toggleCapture()
	}
	d.captureKeyboard()
	d.captureText()
	d.captureMouse()
	d.captureTouches()
	d.captureDroppedFiles()
	return nil
}

func (d *EbitenDisplay) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	r := d.vp.ContentRect()
	if r.W > 0 && r.H > 0 {
		rect := image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))
		screen.SubImage(rect).(*ebiten.Image).Fill(contentColor)
	}
	ebitenutil.DebugPrint(screen, d.status())
}

func (d *EbitenDisplay) Layout(outsideWidth, outsideHeight int) (int, int) {
	d.vp.WindowW = outsideWidth
	d.vp.WindowH = outsideHeight
	return outsideWidth, outsideHeight
}

func (d *EbitenDisplay) status() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %dx%d orientation %s", d.opts.Title, d.vp.Frame.Width, d.vp.Frame.Height, d.vp.Orientation)
	if d.captured {
		fmt.Fprintf(&b, "\nmouse captured, %s to release", d.opts.CaptureKey)
	}
	if d.showFPS {
		fmt.Fprintf(&b, "\n%.1f fps", ebiten.ActualFPS())
	}
	return b.String()
}

// --- inputmgr.Screen ---

func (d *EbitenDisplay) Orientation() geom.Orientation { return d.vp.Orientation }

func (d *EbitenDisplay) SetOrientation(o geom.Orientation) {
	if o == d.vp.Orientation {
		return
	}
	swap := o.IsSwap() != d.vp.Orientation.IsSwap()
	d.vp.Orientation = o
	log.Info().Str("orientation", o.String()).Msg("display orientation set")
	if swap && !ebiten.IsFullscreen() {
		w, h := ebiten.WindowSize()
		ebiten.SetWindowSize(h, w)
	}
}

func (d *EbitenDisplay) FrameSize() geom.Size   { return d.vp.Frame }
func (d *EbitenDisplay) ContentSize() geom.Size { return d.vp.ContentSize() }

func (d *EbitenDisplay) WindowToFrame(x, y int32) geom.Point {
	return d.vp.WindowToFrame(x, y)
}

// DrawableToFrame is WindowToFrame: Layout keeps the logical window size.
func (d *EbitenDisplay) DrawableToFrame(x, y int32) geom.Point {
	return d.vp.WindowToFrame(x, y)
}

func (d *EbitenDisplay) DrawableSize() (int32, int32) {
	return int32(d.vp.WindowW), int32(d.vp.WindowH)
}

func (d *EbitenDisplay) IsInsideContent(x, y int32) bool {
	return d.vp.IsInsideContent(x, y)
}

func (d *EbitenDisplay) SwitchFullscreen() {
	ebiten.SetFullscreen(!ebiten.IsFullscreen())
}

func (d *EbitenDisplay) ResizeToFit() {
	if ebiten.IsFullscreen() {
		return
	}
	ebiten.SetWindowSize(d.vp.FitWindow())
}

func (d *EbitenDisplay) ResizeToPixelPerfect() {
	if ebiten.IsFullscreen() {
		return
	}
	ebiten.SetWindowSize(d.vp.PixelPerfectWindow())
}

func (d *EbitenDisplay) ToggleFPSCounter() {
	d.showFPS = !d.showFPS
	log.Info().Bool("enabled", d.showFPS).Msg("FPS counter toggled")
}

// --- Input capture ---

func (d *EbitenDisplay) emit(evt input.Event) {
	d.handler.HandleEvent(evt, d.captured)
}

func (d *EbitenDisplay) toggleCapture() {
	d.captured = !d.captured
	if d.captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		d.handler.ReleaseCapture()
	}
	d.resyncCursor = true
	log.Info().Bool("captured", d.captured).Msg("mouse capture toggled")
}

func (d *EbitenDisplay) captureKeyboard() {
	mods := currentMods()

	d.keys = inpututil.AppendJustPressedKeys(d.keys[:0])
	for _, k := range d.keys {
		m, ok := keyTable[k]
		if !ok {
			continue
		}
		if m.key == d.opts.CaptureKey {
			d.toggleCapture()
			continue
		}
		d.emit(input.Event{Type: input.EventKeyDown, Key: m.key, Scancode: m.scancode, Mod: mods})
	}

	d.keys = inpututil.AppendPressedKeys(d.keys[:0])
	for _, k := range d.keys {
		dur := inpututil.KeyPressDuration(k)
		if dur <= keyRepeatDelay || (dur-keyRepeatDelay)%keyRepeatInterval != 0 {
			continue
		}
		m, ok := keyTable[k]
		if !ok || m.key == d.opts.CaptureKey {
			continue
		}
		d.emit(input.Event{Type: input.EventKeyDown, Key: m.key, Scancode: m.scancode, Mod: mods, Repeat: true})
	}

	d.keys = inpututil.AppendJustReleasedKeys(d.keys[:0])
	for _, k := range d.keys {
		m, ok := keyTable[k]
		if !ok || m.key == d.opts.CaptureKey {
			continue
		}
		d.emit(input.Event{Type: input.EventKeyUp, Key: m.key, Scancode: m.scancode, Mod: mods})
	}
}

func (d *EbitenDisplay) captureText() {
	d.runes = ebiten.AppendInputChars(d.runes[:0])
	if len(d.runes) == 0 {
		return
	}
	d.emit(input.Event{Type: input.EventText, Text: string(d.runes), Mod: currentMods()})
}

func (d *EbitenDisplay) buttonState() input.ButtonState {
	var s input.ButtonState
	for _, b := range mouseButtons {
		if ebiten.IsMouseButtonPressed(b.eb) {
			s |= b.btn.Bit()
		}
	}
	return s
}

func (d *EbitenDisplay) captureMouse() {
	x, y := ebiten.CursorPosition()
	if d.resyncCursor {
		d.prevMouseX, d.prevMouseY = x, y
		d.resyncCursor = false
	}
	buttons := d.buttonState()
	mods := currentMods()

	if x != d.prevMouseX || y != d.prevMouseY {
		d.emit(input.Event{
			Type:    input.EventMouseMove,
			X:       int32(x),
			Y:       int32(y),
			XRel:    int32(x - d.prevMouseX),
			YRel:    int32(y - d.prevMouseY),
			Buttons: buttons,
			Mod:     mods,
		})
		d.prevMouseX, d.prevMouseY = x, y
	}

	now := time.Now()
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			if now.Sub(d.lastPress[b.btn]) < doubleClickTime {
				d.clicks[b.btn]++
			} else {
				d.clicks[b.btn] = 1
			}
			d.lastPress[b.btn] = now
			d.emit(input.Event{
				Type: input.EventMouseDown, X: int32(x), Y: int32(y),
				Button: b.btn, Buttons: buttons, Clicks: d.clicks[b.btn], Mod: mods,
			})
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			d.emit(input.Event{
				Type: input.EventMouseUp, X: int32(x), Y: int32(y),
				Button: b.btn, Buttons: buttons, Clicks: d.clicks[b.btn], Mod: mods,
			})
		}
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		d.emit(input.Event{
			Type: input.EventMouseScroll, X: int32(x), Y: int32(y),
			ScrollX: float32(wx), ScrollY: float32(wy), Buttons: buttons, Mod: mods,
		})
	}
}

// touch positions are normalized over the drawable area
func (d *EbitenDisplay) touchPosition(id ebiten.TouchID) [2]float32 {
	x, y := ebiten.TouchPosition(id)
	return [2]float32{float32(x) / float32(d.vp.WindowW), float32(y) / float32(d.vp.WindowH)}
}

func (d *EbitenDisplay) captureTouches() {
	if d.vp.WindowW == 0 || d.vp.WindowH == 0 {
		return
	}

	d.touchIDs = inpututil.AppendJustPressedTouchIDs(d.touchIDs[:0])
	for _, id := range d.touchIDs {
		p := d.touchPosition(id)
		d.touches[id] = p
		d.emit(input.Event{Type: input.EventTouchDown, FingerID: int64(id), TouchX: p[0], TouchY: p[1], Pressure: 1})
	}

	d.touchIDs = ebiten.AppendTouchIDs(d.touchIDs[:0])
	for _, id := range d.touchIDs {
		prev, ok := d.touches[id]
		p := d.touchPosition(id)
		if !ok || p == prev {
			continue
		}
		d.touches[id] = p
		d.emit(input.Event{Type: input.EventTouchMove, FingerID: int64(id), TouchX: p[0], TouchY: p[1], Pressure: 1})
	}

	d.touchIDs = inpututil.AppendJustReleasedTouchIDs(d.touchIDs[:0])
	for _, id := range d.touchIDs {
		p, ok := d.touches[id]
		if !ok {
			continue
		}
		delete(d.touches, id)
		d.emit(input.Event{Type: input.EventTouchUp, FingerID: int64(id), TouchX: p[0], TouchY: p[1]})
	}
}

// captureDroppedFiles stages dropped files on disk: Ebitengine exposes them
// as an fs.FS, while adb needs a path.
func (d *EbitenDisplay) captureDroppedFiles() {
	files := ebiten.DroppedFiles()
	if files == nil {
		return
	}
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		log.Warn().Err(err).Msg("could not read dropped files")
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			log.Warn().Str("dir", e.Name()).Msg("dropped directories are not supported")
			continue
		}
		path, err := d.stage(files, e.Name())
		if err != nil {
			log.Warn().Err(err).Str("file", e.Name()).Msg("could not stage dropped file")
			continue
		}
		d.emit(input.Event{Type: input.EventDropFile, Path: path})
	}
}

func (d *EbitenDisplay) stage(files fs.FS, name string) (string, error) {
	if d.dropDir == "" {
		dir, err := os.MkdirTemp("", "airdroid-drop-")
		if err != nil {
			return "", err
		}
		d.dropDir = dir
	}
	src, err := files.Open(name)
	if err != nil {
		return "", err
	}
	defer src.Close()

	path := filepath.Join(d.dropDir, filepath.Base(name))
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", err
	}
	return path, dst.Close()
}
