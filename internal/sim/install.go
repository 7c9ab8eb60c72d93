package sim

import "log/slog"

// Install registers the scene's per-frame systems on s.
//
// Camera translation runs before camera look, so within one frame a move
// uses the orientation from the end of the previous frame.
func Install(s Scheduler, cfg Config, logger *slog.Logger) {
	s.Register(StageSimulate, "star_spin", StarSpin{Rate: cfg.StarSpinRate})
	s.Register(StageSimulate, "orbits", NewOrbitSystem(cfg, logger))
	s.Register(StageCamera, "camera_move", CameraMove{})
	s.Register(StageCamera, "camera_look", CameraLook{PitchLimit: cfg.PitchLimit})
}
