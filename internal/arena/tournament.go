package arena

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/cricklet/chessmatch/internal/eval"
	"github.com/cricklet/chessmatch/internal/game"
	. "github.com/cricklet/chessmatch/internal/helpers"
	"github.com/cricklet/chessmatch/internal/search"
)

// Config is one tournament entrant: an evaluator searched to a fixed depth.
type Config struct {
	Name      string
	Depth     int
	Evaluator search.Evaluator
}

func Combinations(depths []int, evaluators []eval.Named) []Config {
	configs := []Config{}
	for _, depth := range depths {
		for _, e := range evaluators {
			configs = append(configs, Config{
				Name:      fmt.Sprintf("%v@%v", e.Name, depth),
				Depth:     depth,
				Evaluator: e.Evaluator,
			})
		}
	}
	return configs
}

type PairingResult struct {
	White Config
	Black Config
	Games []game.Result
}

func Tally(results []game.Result) (float64, float64) {
	white, black := 0.0, 0.0
	for _, r := range results {
		switch r {
		case game.WhiteWon:
			white++
		case game.BlackWon:
			black++
		default:
			white += 0.5
			black += 0.5
		}
	}
	return white, black
}

func TallyString(results []game.Result) string {
	white, black := Tally(results)
	return fmt.Sprintf("%v - %v", white, black)
}

// RunTournament plays every configuration against every other, with the
// first of each pairing as white for all of that pairing's games.
func (a *Arena) RunTournament(configs []Config, gamesPerPairing int) ([]PairingResult, Error) {
	n := len(configs)
	results := []PairingResult{}

	var bar *progressbar.ProgressBar
	if a.showProgress {
		bar = progressbar.Default(int64(n*(n-1)*gamesPerPairing), "tournament")
	}

	for k := 0; k < n; k++ {
		for l := 1; l < n; l++ {
			white := configs[k]
			black := configs[(k+l)%n]

			games := []game.Result{}
			for g := 0; g < gamesPerPairing; g++ {
				position := game.StartingPosition()
				result, err := a.Play(position,
					Player{white.Name, white.Evaluator, white.Depth},
					Player{black.Name, black.Evaluator, black.Depth})
				if !IsNil(err) {
					return results, err
				}
				games = append(games, result)
				if bar != nil {
					Ignore(bar.Add(1))
				}
			}

			a.Logger.Println(white.Name, "vs", black.Name, ":", TallyString(games))
			results = append(results, PairingResult{white, black, games})
		}
	}

	if bar != nil {
		Ignore(bar.Close())
	}
	return results, NilError
}

func WriteCsv(w io.Writer, results []PairingResult) Error {
	writer := csv.NewWriter(w)

	err := writer.Write([]string{"white", "black", "games", "tally"})
	if !IsNil(err) {
		return Wrap(err)
	}
	for _, r := range results {
		games := MapSlice(r.Games, func(g game.Result) string {
			return g.String()
		})
		err = writer.Write([]string{
			r.White.Name, r.Black.Name, strings.Join(games, " "), TallyString(r.Games)})
		if !IsNil(err) {
			return Wrap(err)
		}
	}

	writer.Flush()
	return Wrap(writer.Error())
}
