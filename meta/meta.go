// meta/meta.go
package meta

// BOARD_SIZE defines the side length of the square board.
const BOARD_SIZE = 15

// WIN_LENGTH defines how many stones in a row win the game.
const WIN_LENGTH = 5

// MAX_EXPANSIONS defines the node-expansion budget of a single search.
const MAX_EXPANSIONS = 5000

// STORM_BRANCHES defines how many Stone Storm targets survive as root branches.
const STORM_BRANCHES = 3

// STORM_CANDIDATES caps how many Stone Storm targets are simulated and scored.
const STORM_CANDIDATES = 16

// ACTION_LOG_CAPACITY defines how many entries the game's action log keeps.
const ACTION_LOG_CAPACITY = 16

// MAX_TURNS caps the number of resolved actions in an automated match.
const MAX_TURNS = 300
