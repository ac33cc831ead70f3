package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/pkg/profile"

	"github.com/cricklet/chessmatch/internal/arena"
	"github.com/cricklet/chessmatch/internal/eval"
	"github.com/cricklet/chessmatch/internal/game"
	. "github.com/cricklet/chessmatch/internal/helpers"
)

func usage() {
	fmt.Println("usage:")
	fmt.Println("  arena [profile] match <whiteEval> <whiteDepth> <blackEval> <blackDepth>")
	fmt.Println("  arena [profile] tournament [csvPath] [depths=1,2] [games=2]")
	fmt.Println()
	fmt.Println("evaluators:")
	for _, named := range eval.All() {
		fmt.Println("  " + named.Name)
	}
	fmt.Println("  random")
}

func parseInt(s string) (int, Error) {
	return WrapReturn(strconv.Atoi(s))
}

func parsePlayer(evalName string, depthStr string) (arena.Player, Error) {
	evaluator, err := eval.ByName(evalName)
	if !IsNil(err) {
		return arena.Player{}, err
	}
	depth, err := parseInt(depthStr)
	if !IsNil(err) {
		return arena.Player{}, err
	}
	return arena.Player{
		Name:      fmt.Sprintf("%v@%v", evalName, depth),
		Evaluator: evaluator,
		Depth:     depth,
	}, NilError
}

func runMatch(args []string) Error {
	if len(args) != 4 {
		usage()
		return Errorf("match needs 4 args, got %v", len(args))
	}

	white, err := parsePlayer(args[0], args[1])
	if !IsNil(err) {
		return err
	}
	black, err := parsePlayer(args[2], args[3])
	if !IsNil(err) {
		return err
	}

	a := arena.NewArena(arena.WithLogger{Logger: &DefaultLogger})
	position := game.StartingPosition()

	result, err := a.Play(position, white, black)
	if !IsNil(err) {
		return err
	}

	fmt.Println(position.String())
	fmt.Println(white.Name, "vs", black.Name, ":", result)
	return NilError
}

func runTournament(args []string) Error {
	csvPath := ""
	// small default so a full round-robin finishes quickly; pass
	// depths=2,4,6 for a serious tournament
	depths := []int{1, 2}
	gamesPerPairing := 2

	var err Error
	for _, arg := range args {
		if strings.HasPrefix(arg, "depths=") {
			depths = nil
			for _, d := range strings.Split(strings.TrimPrefix(arg, "depths="), ",") {
				var depth int
				depth, err = parseInt(d)
				if !IsNil(err) {
					return err
				}
				depths = append(depths, depth)
			}
		} else if strings.HasPrefix(arg, "games=") {
			gamesPerPairing, err = parseInt(strings.TrimPrefix(arg, "games="))
			if !IsNil(err) {
				return err
			}
		} else {
			csvPath = arg
		}
	}

	configs := arena.Combinations(depths, eval.All())
	a := arena.NewArena(
		arena.WithLogger{Logger: &DefaultLogger},
		arena.WithProgress{})

	results, err := a.RunTournament(configs, gamesPerPairing)
	if !IsNil(err) {
		return err
	}

	if csvPath == "" {
		return arena.WriteCsv(os.Stdout, results)
	}

	f, fileErr := os.Create(csvPath)
	if fileErr != nil {
		return Wrap(fileErr)
	}
	defer f.Close()
	return arena.WriteCsv(f, results)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	args := os.Args[1:]

	if Contains(args, "profile") {
		p := profile.Start(profile.ProfilePath(RootDir() + "/data/CmdArenaMain"))
		defer p.Stop()
	}
	args = FilterSlice(args, func(arg string) bool {
		return arg != "profile"
	})

	if len(args) == 0 {
		usage()
		return
	}

	var err Error
	switch args[0] {
	case "match":
		err = runMatch(args[1:])
	case "tournament":
		err = runTournament(args[1:])
	default:
		usage()
		err = Errorf("unknown command %v", args[0])
	}

	if !IsNil(err) {
		panic(err)
	}
}
