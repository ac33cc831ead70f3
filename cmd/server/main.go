package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/cricklet/chessmatch/internal/game"
	. "github.com/cricklet/chessmatch/internal/helpers"
)

type UpdateToWeb struct {
	FenString string   `json:"fenString"`
	LastMove  string   `json:"lastMove"`
	Player    string   `json:"player"`
	Result    string   `json:"result"`
	History   []string `json:"history"`
}

func (u UpdateToWeb) String() string {
	return fmt.Sprint("UpdateToWeb: ", u.FenString, ", ", u.LastMove, ", ", u.Player, ", ", u.Result)
}

type MessageFromWeb struct {
	NewFen     *string `json:"newFen"`
	WhiteEval  *string `json:"whiteEval"`
	WhiteDepth *int    `json:"whiteDepth"`
	BlackEval  *string `json:"blackEval"`
	BlackDepth *int    `json:"blackDepth"`
	Start      *bool   `json:"start"`
}

func (u MessageFromWeb) String() string {
	if u.NewFen != nil {
		return fmt.Sprint("MessageFromWeb NewFen: ", *u.NewFen)
	}
	if u.WhiteEval != nil {
		return fmt.Sprint("MessageFromWeb WhiteEval: ", *u.WhiteEval)
	}
	if u.BlackEval != nil {
		return fmt.Sprint("MessageFromWeb BlackEval: ", *u.BlackEval)
	}
	if u.WhiteDepth != nil {
		return fmt.Sprint("MessageFromWeb WhiteDepth: ", *u.WhiteDepth)
	}
	if u.BlackDepth != nil {
		return fmt.Sprint("MessageFromWeb BlackDepth: ", *u.BlackDepth)
	}
	if u.Start != nil {
		return fmt.Sprint("MessageFromWeb Start: ", *u.Start)
	}
	return "MessageFromWeb unknown"
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	var upgrader = websocket.Upgrader{}

	var ws = func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if !IsNil(err) {
			panic(err)
		}
		defer c.Close()

		var writeMutex sync.Mutex
		var writeJson = func(v any) {
			writeMutex.Lock()
			defer writeMutex.Unlock()

			bytes, err := json.Marshal(v)
			if !IsNil(err) {
				fmt.Fprintln(os.Stderr, fmt.Sprint("json marshal: ", err))
				return
			}
			err = c.WriteMessage(websocket.TextMessage, bytes)
			if !IsNil(err) {
				fmt.Fprintln(os.Stderr, fmt.Sprint("websocket: ", err))
			}
		}

		logger := FuncLogger(func(message string) {
			log.Print("forwarding: ", message)
			writeJson([]string{message})
		})

		s := newSession()

		var sendUpdate = func(position *game.Position, move Optional[game.Move]) {
			update := UpdateToWeb{
				FenString: position.Fen(),
				Result:    position.Result().String(),
				History:   position.MoveHistory(),
			}
			if move.HasValue() {
				update.LastMove = move.Value().String()
			}
			if position.Turn() == game.White {
				update.Player = "white"
			} else {
				update.Player = "black"
			}

			logger.Println("sending", update)
			writeJson(update)
		}

		var handleMessageFromWeb = func(bytes []byte) {
			var message MessageFromWeb
			err := json.Unmarshal(bytes, &message)
			if !IsNil(err) {
				logger.Println("handleMessageFromWeb: json unmarshal: ", err)
				return
			}
			logger.Println("received", message)

			if message.NewFen != nil {
				position, err := s.setFen(*message.NewFen)
				if !IsNil(err) {
					logger.Println("setup: ", err)
					return
				}
				sendUpdate(position, Empty[game.Move]())
			} else if message.WhiteEval != nil {
				if err := s.setEval(game.White, *message.WhiteEval); !IsNil(err) {
					logger.Println("white eval: ", err)
				}
			} else if message.BlackEval != nil {
				if err := s.setEval(game.Black, *message.BlackEval); !IsNil(err) {
					logger.Println("black eval: ", err)
				}
			} else if message.WhiteDepth != nil {
				if err := s.setDepth(game.White, *message.WhiteDepth); !IsNil(err) {
					logger.Println("white depth: ", err)
				}
			} else if message.BlackDepth != nil {
				if err := s.setDepth(game.Black, *message.BlackDepth); !IsNil(err) {
					logger.Println("black depth: ", err)
				}
			} else if message.Start != nil && *message.Start {
				_, err := s.start(logger, func(position *game.Position, move game.Move) {
					sendUpdate(position, Some(move))
				})
				if !IsNil(err) {
					logger.Println("start: ", err)
				}
			}
		}

		for {
			_, message, err := c.ReadMessage()
			if !IsNil(err) {
				logger.Printf("Error: %v", err)
				break
			} else {
				handleMessageFromWeb(message)
			}
		}
	}

	var index = func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, RootDir()+"/static/index.html")
	}

	port := 8002

	args := os.Args[1:]
	for _, arg := range args {
		if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
			port = int(parsed)
		}
	}

	log.Println("serving at", port)

	router := mux.NewRouter()
	router.HandleFunc("/ws", ws)
	router.PathPrefix("/static").Handler(
		http.StripPrefix("/static", http.FileServer(http.Dir(RootDir()+"/static"))))
	router.HandleFunc("/", index)

	err := Wrap(http.ListenAndServe(fmt.Sprintf(":%v", port), router))
	if !IsNil(err) {
		panic(err)
	}
}
