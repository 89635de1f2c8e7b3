package cakewalk

import (
	"io"
	"os"
	"time"
)

// Default physics constants. The physics step is fixed so that integration
// stays deterministic regardless of the real frame delta.
const (
	DefaultPhysicsStep    = 1.0 / 60
	DefaultPixelsPerMeter = 32.0
)

// WorldConfig holds the physics constants of a World. Zero fields take the
// defaults.
type WorldConfig struct {
	PhysicsStep    float64 // seconds integrated per update
	PixelsPerMeter float64 // pixels moved per meter of displacement
}

func (c WorldConfig) withDefaults() WorldConfig {
	if c.PhysicsStep <= 0 {
		c.PhysicsStep = DefaultPhysicsStep
	}
	if c.PixelsPerMeter <= 0 {
		c.PixelsPerMeter = DefaultPixelsPerMeter
	}
	return c
}

// World is the top-level object that owns the node tree, the node registry,
// the deferred remove queue, the collision matrix and pair-state, tweens,
// timers and the camera. All state is mutated from the single frame loop.
type World struct {
	root   *Node
	cfg    WorldConfig
	store  EntityStore
	camera *Camera

	registry    map[string]*Node
	nodeSeq     uint64
	removeQueue []*Node

	matrix    CollisionMatrix
	pairs     pairState
	frame     uint64
	bucketBuf map[int][]*Node

	collisions Dispatcher[CollisionEvent]
	tweens     []*TweenGroup
	timers     timerList

	debug  bool
	logOut io.Writer
	stats  debugStats
}

// NewWorld creates a world with a pre-created root container.
func NewWorld(cfg WorldConfig) *World {
	w := &World{
		cfg:       cfg.withDefaults(),
		registry:  make(map[string]*Node),
		bucketBuf: make(map[int][]*Node),
		logOut:    os.Stderr,
	}
	w.root = w.NewContainer("root")
	w.camera = newCamera()
	return w
}

// Root returns the world's root container node.
func (w *World) Root() *Node {
	return w.root
}

// Config returns the physics constants in effect.
func (w *World) Config() WorldConfig {
	return w.cfg
}

// Camera returns the world's camera.
func (w *World) Camera() *Camera {
	return w.camera
}

// Frame returns the number of collision passes run so far.
func (w *World) Frame() uint64 {
	return w.frame
}

// Lookup returns the live node with the given ID, or nil if the node was
// removed or never existed.
func (w *World) Lookup(id string) *Node {
	return w.registry[id]
}

// NumNodes returns the number of registered (not yet removed) nodes.
func (w *World) NumNodes() int {
	return len(w.registry)
}

// SetCollisionPair enables or disables collision testing between two layers.
func (w *World) SetCollisionPair(a, b int, enabled bool) {
	w.matrix.Set(a, b, enabled)
}

// CheckCollisionPair reports whether two layers are tested against each other.
func (w *World) CheckCollisionPair(a, b int) bool {
	return w.matrix.Check(a, b)
}

// CollisionMatrix returns the world's layer matrix.
func (w *World) CollisionMatrix() *CollisionMatrix {
	return &w.matrix
}

// OnCollision registers a world-wide listener that receives every collision
// event. Listeners filter by ID themselves.
func (w *World) OnCollision(fn func(CollisionEvent)) CallbackHandle {
	return w.collisions.Subscribe(fn)
}

// SetEntityStore sets the optional ECS bridge.
func (w *World) SetEntityStore(store EntityStore) {
	w.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, diagnostics and
// per-frame timing stats are written to the log output.
func (w *World) SetDebugMode(enabled bool) {
	w.debug = enabled
}

// SetLogOutput redirects debug output (stderr by default).
func (w *World) SetLogOutput(out io.Writer) {
	w.logOut = out
}

// --- Frame sequence ---

// Step runs one frame of the fixed sequence: update the scene graph, run the
// collision pass, drain removals, then advance tweens, timers and the camera.
// dt is the real frame delta; physics integration uses the fixed step.
func (w *World) Step(dt float64) {
	w.stats = debugStats{}
	var t0 time.Time
	if w.debug {
		t0 = time.Now()
	}

	w.Update(dt)

	if w.debug {
		w.stats.updateTime = time.Since(t0)
		t0 = time.Now()
	}

	w.RunCollisionPass(w.root)

	if w.debug {
		w.stats.collisionTime = time.Since(t0)
		t0 = time.Now()
	}

	w.stats.removed = w.DrainRemovals()

	if w.debug {
		w.stats.drainTime = time.Since(t0)
	}

	w.advanceTweens(float32(dt))
	w.timers.advance(dt)
	w.camera.update(float32(dt))

	if w.debug {
		w.debugLog(w.stats)
	}
}

// Update runs every node's update in tree order: the node's own hook, its
// animation, its physics integration, then its children in list order.
func (w *World) Update(dt float64) {
	w.updateNode(w.root, dt)
}

func (w *World) updateNode(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	if n.Anim != nil {
		n.Anim.update(n, dt)
	}
	if n.Body != nil {
		n.Body.integrate(n, w.cfg.PhysicsStep, w.cfg.PixelsPerMeter)
	}
	for _, child := range n.children {
		w.updateNode(child, dt)
	}
}

// --- Deferred removal ---

func (w *World) queueRemoval(n *Node) {
	if n.removalQueued || n.disposed {
		return
	}
	n.removalQueued = true
	w.removeQueue = append(w.removeQueue, n)
}

// DrainRemovals detaches every queued node from its current parent, clears
// its parent reference and unregisters it and its descendants. It returns the
// number of nodes drained. Step calls it once per frame after the collision
// pass, so removed nodes have already produced their events for the frame
// and are never drawn again.
func (w *World) DrainRemovals() int {
	count := 0
	for i, n := range w.removeQueue {
		w.removeQueue[i] = nil
		n.removalQueued = false
		if n.disposed {
			continue
		}
		if n == w.root {
			w.logf("ignoring removal of the root node")
			continue
		}
		if n.Parent != nil {
			n.Parent.removeChildByPtr(n)
			n.Parent = nil
		}
		w.dispose(n)
		count++
	}
	w.removeQueue = w.removeQueue[:0]
	return count
}

func (w *World) dispose(n *Node) {
	n.disposed = true
	delete(w.registry, n.ID)
	for _, child := range n.children {
		child.Parent = nil
		w.dispose(child)
	}
	n.children = nil
	n.listeners.Clear()
	n.OnUpdate = nil
	n.Image = nil
	n.UserData = nil
}

// PendingRemovals returns the number of nodes waiting in the remove queue.
func (w *World) PendingRemovals() int {
	return len(w.removeQueue)
}

// --- Tweens ---

// AddTween registers a tween group that Step advances until it is Done.
func (w *World) AddTween(g *TweenGroup) {
	w.tweens = append(w.tweens, g)
}

// NumTweens returns the number of active tween groups.
func (w *World) NumTweens() int {
	return len(w.tweens)
}

func (w *World) advanceTweens(dt float32) {
	if len(w.tweens) == 0 {
		return
	}
	var finished []*TweenGroup
	kept := make([]*TweenGroup, 0, len(w.tweens))
	for _, g := range w.tweens {
		g.Update(dt)
		if g.Done {
			finished = append(finished, g)
		} else {
			kept = append(kept, g)
		}
	}
	w.tweens = kept
	// Completion callbacks may add tweens; they start next frame.
	for _, g := range finished {
		if g.OnComplete != nil {
			g.OnComplete()
		}
	}
}
