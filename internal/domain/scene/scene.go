// Package scene resolves the renderable scene class declared in animation
// source text via structural pattern matching. It never evaluates the source.
package scene

import "regexp"

// classPattern matches a class declaration deriving from one of the known
// scene base types: Scene, ThreeDScene, ZoomedScene, MovingCameraScene.
var classPattern = regexp.MustCompile(`class\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*\(\s*(?:ThreeD|Zoomed|MovingCamera)?Scene\s*\):`)

// Detect returns the name of the first scene class declared in source, in
// source order. The second return is false when no declaration matches.
// Detection is pure: same input always yields the same result.
func Detect(source string) (string, bool) {
	m := classPattern.FindStringSubmatch(source)
	if m == nil {
		return "", false
	}
	return m[1], true
}
