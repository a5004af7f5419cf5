package views

import "servicehub/models"

// AuthView is shown instead of the home page while auth resolves or nobody is signed in.
type AuthView struct {
	State         models.AuthState `json:"state"`
	Title         string           `json:"title"`
	Message       string           `json:"message,omitempty"`
	ActionLabel   string           `json:"actionLabel,omitempty"`
	Authenticated bool             `json:"authenticated"`
}

func NewAuthView(state models.AuthState) AuthView {
	switch {
	case state.IsLoading:
		return AuthView{State: state, Title: "Loading ServiceHub..."}
	case state.User == nil:
		return AuthView{
			State:       state,
			Title:       "Welcome to ServiceHub",
			Message:     "Connect with verified service providers in your area",
			ActionLabel: "Sign In to Continue",
		}
	default:
		return AuthView{State: state, Title: "Welcome back, " + state.User.DisplayName, Authenticated: true}
	}
}
