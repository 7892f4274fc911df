package entities

// RealtimePage holds everything the realtime page embeds for the browser to
// open its own session with the vendor.
type RealtimePage struct {
	Model        string
	Voice        string
	SilenceMS    int
	ClientID     string
	APIKey       string
	Instructions string
}
