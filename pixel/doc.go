// Package pixel implements images over raw framebuffer surfaces.
//
// The images are compatible with Go's native [color.Color] and [image.Image] /
// [draw.Image] interfaces, and write straight into the backing byte slice so that
// drawing code can render into a shadow surface without an extra conversion pass.
package pixel
