package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/bastion/engine/assets"
)

// Program is a linked vertex+fragment pair. Attribute and uniform
// locations are resolved on first request and cached; nodes keep the
// resolved values in their own fields.
type Program struct {
	Name     string
	ID       uint32
	vertex   uint32
	fragment uint32
	attribs  map[string]int32
	uniforms map[string]int32
}

func (p *Program) Attrib(name string) int32 {
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	loc := gl.GetAttribLocation(p.ID, gl.Str(name+"\x00"))
	p.attribs[name] = loc
	return loc
}

func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

func (p *Program) delete() {
	if p.ID == 0 {
		return
	}
	gl.DetachShader(p.ID, p.vertex)
	gl.DetachShader(p.ID, p.fragment)
	gl.DeleteProgram(p.ID)
	p.ID = 0
}

var glStage = map[assets.Stage]uint32{
	assets.Vertex:   gl.VERTEX_SHADER,
	assets.Fragment: gl.FRAGMENT_SHADER,
}

// Shader returns the compiled shader for (stage, name), loading
// shaders/<name>.<stage>.glsl on first use.
func (g *Graphics) Shader(stage assets.Stage, name string) (uint32, error) {
	key := shaderKey{stage, name}
	if id, ok := g.shaders[key]; ok {
		return id, nil
	}
	src, err := g.lib.ShaderSource(name, stage)
	if err != nil {
		return 0, err
	}
	id, err := compileShader(src, glStage[stage])
	if err != nil {
		return 0, fmt.Errorf("the GLSL shader %s did not compile: %w", g.lib.ShaderPath(name, stage), err)
	}
	g.shaders[key] = id
	return id, nil
}

// Program returns the linked program for name.
func (g *Graphics) Program(name string) (*Program, error) {
	if p, ok := g.programs[name]; ok {
		return p, nil
	}
	vs, err := g.Shader(assets.Vertex, name)
	if err != nil {
		return nil, err
	}
	fs, err := g.Shader(assets.Fragment, name)
	if err != nil {
		return nil, err
	}
	id, err := linkProgram(vs, fs)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", name, err)
	}
	p := &Program{
		Name:     name,
		ID:       id,
		vertex:   vs,
		fragment: fs,
		attribs:  map[string]int32{},
		uniforms: map[string]int32{},
	}
	g.programs[name] = p
	return p, nil
}

// compileShader reports the source as seen by the driver plus the info log.
func compileShader(src string, kind uint32) (uint32, error) {
	sh := gl.CreateShader(kind)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var srcLen, logLen int32
		gl.GetShaderiv(sh, gl.SHADER_SOURCE_LENGTH, &srcLen)
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		source := strings.Repeat("\x00", int(srcLen+1))
		gl.GetShaderSource(sh, srcLen, nil, gl.Str(source))
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, &BuildError{Source: strings.TrimRight(source, "\x00"), Log: strings.TrimRight(log, "\x00")}
	}
	return sh, nil
}

func linkProgram(shaders ...uint32) (uint32, error) {
	prog := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(prog, s)
	}
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, &BuildError{Log: strings.TrimRight(log, "\x00")}
	}
	return prog, nil
}
