package infinityrunner

// Scene is the lit instance collection plus an optional sky dome that is
// drawn separately, without lighting.
type Scene struct {
	instances []*ModelInstance
	skyDome   *ModelInstance
}

func NewScene() *Scene {
	return &Scene{}
}

func (s *Scene) AddInstance(inst *ModelInstance) {
	s.instances = append(s.instances, inst)
}

func (s *Scene) Instances() []*ModelInstance {
	return s.instances
}

func (s *Scene) Len() int {
	return len(s.instances)
}

func (s *Scene) SetSkyDome(inst *ModelInstance) {
	s.skyDome = inst
}

func (s *Scene) SkyDome() *ModelInstance {
	return s.skyDome
}

// Clear drops every instance and the sky dome. The models stay with
// their owners.
func (s *Scene) Clear() {
	s.instances = nil
	s.skyDome = nil
}

// Render submits the lit instances, then the sky dome if there is one.
func (s *Scene) Render(r Renderer, env *Environment) error {
	if err := r.Render(s.instances, env); err != nil {
		return err
	}
	if s.skyDome != nil {
		return r.Render([]*ModelInstance{s.skyDome}, nil)
	}
	return nil
}
