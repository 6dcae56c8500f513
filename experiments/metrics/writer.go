package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

type GameRecord struct {
	MatchUp int // Index into the experiment's match ups
	Agent1  int // AgentConfig.ID playing black
	Agent2  int // AgentConfig.ID playing white
	GameMetric
}

type MoveRecord struct {
	Game string // GameMetric.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold one experiment's files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create directory")
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Persona,
			strconv.Itoa(config.Budget),
		})
	}
	return w.write("agent_configs.csv", []string{"id", "persona", "budget"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			strconv.Itoa(record.MatchUp),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.FormatUint(record.Seed, 10),
			record.Black,
			record.White,
			record.Winner,
			strconv.FormatBool(record.IsDraw),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	header := []string{"id", "match_up", "agent1", "agent2", "seed", "black", "white", "winner", "is_draw", "start_time", "end_time", "duration", "total_moves"}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Step),
			record.Player,
			record.Action,
			strconv.FormatBool(record.SkillFailed),
			strconv.Itoa(record.Depth),
			record.Duration.String(),
			strconv.Itoa(record.Expansions),
			strconv.Itoa(record.Pushes),
			strconv.Itoa(record.RootPlacements),
			strconv.Itoa(record.RootSkills),
			strconv.FormatFloat(record.BestScore, 'g', -1, 64),
			strconv.Itoa(record.Ties),
			strconv.FormatBool(record.IsFallback),
		})
	}
	header := []string{"game", "step", "player", "action", "skill_failed", "depth", "duration", "expansions", "pushes", "root_placements", "root_skills", "best_score", "ties", "is_fallback"}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", name)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return errors.Wrapf(err, "failed to write %s header", name)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return errors.Wrapf(err, "failed to write %s row", name)
		}
	}
	writer.Flush()
	return errors.Wrapf(writer.Error(), "failed to flush %s", name)
}
