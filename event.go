package grove

// Event handles an adapter event. EventTick advances the scene by e.DT;
// a press of TriggerPause pauses every live run and a press of TriggerResume
// resumes them. Every event is then forwarded to the EventSink, if any.
func (s *Scene) Event(e Event) {
	switch e.Kind {
	case EventTick:
		s.Update(e.DT)
	case EventPress:
		switch e.Trigger {
		case TriggerPause:
			s.PauseAll()
		case TriggerResume:
			s.ResumeAll()
		}
	}
	s.emit(e)
}

func (s *Scene) emit(e Event) {
	if s.sink != nil {
		s.sink.EmitEvent(e)
	}
}
