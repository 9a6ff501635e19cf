package scenario

var ErrSyntax = &ScenarioError{"syntax error"}

type ScenarioError struct {
	Msg string
}

func (e *ScenarioError) Error() string {
	return e.Msg
}

func (e *ScenarioError) Is(target error) bool {
	if targetErr, ok := target.(*ScenarioError); ok {
		return e.Msg == targetErr.Msg
	}
	return false
}
