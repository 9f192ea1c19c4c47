package web

import (
	"bytes"
	"html/template"

	"github.com/jaminalder/time-travel-tic-tac-toe/internal/domain"
)

type templates struct {
	base  *template.Template
	page  *template.Template
	game  *template.Template
	index *template.Template
}

type gameData struct {
	ID   string
	View domain.View
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"iter": func(n int) []int {
			a := make([]int, n)
			for i := range a {
				a[i] = i
			}
			return a
		},
		"add": func(a, b int) int { return a + b },
		"mul": func(a, b int) int { return a * b },
		"ascending": func(o domain.Order) bool { return o == domain.Ascending },
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<style>` + css + `</style>
</head><body>{{template "content" .}}</body></html>`))
	template.Must(base.New("game").Parse(gameTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Tic-Tac-Toe</h1><form action="/game" method="post"><button>New game</button></form>`))
	page := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Tic-Tac-Toe</h1>{{template "game" .}}`))
	// Standalone fragment returned to htmx swaps
	game := template.Must(template.New("game_only").Funcs(funcs()).Parse(gameTemplate))
	return &templates{base: base, page: page, game: game, index: index}
}

func render(t *template.Template, name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if name == "" {
		err = t.Execute(&buf, data)
	} else {
		err = t.ExecuteTemplate(&buf, name, data)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const css = `
.game { display: flex; gap: 2em; }
.board-row { display: flex; }
.board-row form { margin: 0; }
.square { width: 3em; height: 3em; font-size: 1.4em; font-weight: bold; }
.square.win { background: #ffe27a; }
`

const gameTemplate = `
<div id="game" class="game">
  <div class="game-board">
  {{range $r := iter 3}}
    <div class="board-row">
    {{range $c := iter 3}}{{$i := add (mul $r 3) $c}}
      <form action="/game/{{$.ID}}/play" method="post" hx-post="/game/{{$.ID}}/play" hx-target="#game" hx-swap="outerHTML">
        <input type="hidden" name="cell" value="{{$i}}">
        <button type="submit" class="square{{if $.View.InLine $i}} win{{end}}">{{index $.View.Board $i}}</button>
      </form>
    {{end}}
    </div>
  {{end}}
  </div>
  <div class="game-info">
    <div class="status">{{.View.Status}}</div>
    <form action="/game/{{.ID}}/order" method="post" hx-post="/game/{{.ID}}/order" hx-target="#game" hx-swap="outerHTML">
      <button type="submit">{{if ascending .View.Order}}Sort descending{{else}}Sort ascending{{end}}</button>
    </form>
    <ol class="moves">
    {{range .View.Moves}}
      <li>
        <form action="/game/{{$.ID}}/jump" method="post" hx-post="/game/{{$.ID}}/jump" hx-target="#game" hx-swap="outerHTML">
          <input type="hidden" name="step" value="{{.Step}}">
          <button type="submit">{{if .Current}}<strong>{{.Label}}</strong>{{else}}{{.Label}}{{end}}</button>
        </form>
      </li>
    {{end}}
    </ol>
    <form action="/game/{{.ID}}/reset" method="post" hx-post="/game/{{.ID}}/reset" hx-target="#game" hx-swap="outerHTML">
      <button type="submit">Restart</button>
    </form>
  </div>
</div>
`
