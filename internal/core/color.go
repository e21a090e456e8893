package core

// Color names the role of a screen cell. The platform layer decides how
// each role is drawn, so the game never deals with terminal color codes.
type Color uint8

const (
	ColorDefault     Color = iota
	ColorFrame             // Playfield border
	ColorHUD               // Score line
	ColorName              // Player name in the HUD
	ColorAccent            // Overlay titles
	ColorPlayer            // The player block
	ColorCoin              // Coins
	ColorBarrier           // Horizontal barriers
	ColorBarrierTall       // Vertical barriers
)
