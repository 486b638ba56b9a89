// Package glutil holds helpers for the calls every OpenGL program repeats:
// compiling and linking shaders, uploading uniforms, logging debug output
// and reading back the framebuffer.
//
// All functions require a current context.
package glutil
