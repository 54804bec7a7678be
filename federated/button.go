package federated

import perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"

// ButtonOptions is the configuration handed to the Google Identity Services
// button renderer.
type ButtonOptions struct {
	ClientID      string `json:"client_id"`
	Theme         string `json:"theme"`
	Size          string `json:"size"`
	Text          string `json:"text"`
	Shape         string `json:"shape"`
	Width         string `json:"width"`
	LogoAlignment string `json:"logo_alignment"`
}

func (g *GoogleAuth) ButtonOptions(mode Mode) (ButtonOptions, error) {
	if g.clientID == "" {
		g.logger.Error().Msg("Missing Google client ID")
		return ButtonOptions{}, perrors.ErrMissingClientID
	}
	text := "signup_with"
	if mode == ModeLogin {
		text = "signin_with"
	}
	return ButtonOptions{
		ClientID:      g.clientID,
		Theme:         "outline",
		Size:          "large",
		Text:          text,
		Shape:         "rectangular",
		Width:         "100%",
		LogoAlignment: "left",
	}, nil
}
