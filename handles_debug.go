//go:build nodeeditdebug

package nodeedit

// debugHandles makes invalid handles fatal.
const debugHandles = true
