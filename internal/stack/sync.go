package stack

// StepPhysics advances the world by dt and copies each overhang's simulated
// position back onto its block and mesh. Layers are driven, not simulated,
// so they are never synced from the world.
func (m *Manager) StepPhysics(dt float64) {
	m.world.Step(dt)
	for _, b := range m.overhangs {
		b.SyncFromBody()
	}
}
