//go:build !nodeeditdebug

package nodeedit

// debugHandles is false: invalid handles are logged and returned.
const debugHandles = false
