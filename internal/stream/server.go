package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Garsondee/grid-battle/internal/grid"
	"github.com/Garsondee/grid-battle/internal/logs"
)

type neighbourJSON struct {
	X             int    `json:"x"`
	Y             int    `json:"y"`
	Description   string `json:"description"`
	Effectiveness int    `json:"effectiveness"`
	ShouldFight   bool   `json:"should_fight"`
}

type cellJSON struct {
	X           int             `json:"x"`
	Y           int             `json:"y"`
	Description string          `json:"description"`
	Label       string          `json:"label"`
	Color       string          `json:"color"`
	Neighbours  []neighbourJSON `json:"neighbours"`
}

// NewRouter wires the viewer page, the JSON API and the frame websocket.
func NewRouter(r *Runner, hub *Hub) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", serveIndex).Methods(http.MethodGet)
	router.HandleFunc("/api/state", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, r.State())
	}).Methods(http.MethodGet)
	router.HandleFunc("/api/cells/{x:[0-9]+}/{y:[0-9]+}", func(w http.ResponseWriter, req *http.Request) {
		handleCell(w, req, r)
	}).Methods(http.MethodGet)
	router.Handle("/ws", hub).Methods(http.MethodGet)
	return router
}

func handleCell(w http.ResponseWriter, req *http.Request, r *Runner) {
	vars := mux.Vars(req)
	x, errX := strconv.Atoi(vars["x"])
	y, errY := strconv.Atoi(vars["y"])
	if errX != nil || errY != nil {
		http.Error(w, "bad cell coordinates", http.StatusBadRequest)
		return
	}
	in, ok := r.Inspect(grid.Location{X: x, Y: y})
	if !ok {
		http.Error(w, fmt.Sprintf("cell (%d,%d) out of range", x, y), http.StatusNotFound)
		return
	}
	resp := cellJSON{
		X:           x,
		Y:           y,
		Description: in.Description,
		Label:       in.Label,
		Color:       fmt.Sprintf("#%02x%02x%02x", in.Color.R, in.Color.G, in.Color.B),
	}
	for _, n := range in.Neighbours {
		resp.Neighbours = append(resp.Neighbours, neighbourJSON{
			X:             n.Location.X,
			Y:             n.Location.Y,
			Description:   n.Description,
			Effectiveness: n.Effectiveness,
			ShouldFight:   n.ShouldFight,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logs.Warn("write response failed", zap.Error(err))
	}
}

// NewServer returns an http.Server with conservative header timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func serveIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

const indexHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Grid Battle</title>
<style>body{background:#08080a;color:#ddd;font:13px monospace}canvas{image-rendering:pixelated;width:768px}</style>
</head>
<body>
<canvas id="c"></canvas>
<pre id="info"></pre>
<script>
const c = document.getElementById('c'), ctx = c.getContext('2d'), info = document.getElementById('info');
const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
ws.binaryType = 'arraybuffer';
ws.onmessage = (ev) => {
  const v = new DataView(ev.data), w = v.getUint16(0), h = v.getUint16(2);
  if (c.width !== w || c.height !== h) { c.width = w; c.height = h; }
  const img = ctx.createImageData(w, h), src = new Uint8Array(ev.data, 4);
  for (let i = 0, j = 0; i < w * h; i++, j += 3) {
    img.data[4*i] = src[j]; img.data[4*i+1] = src[j+1]; img.data[4*i+2] = src[j+2]; img.data[4*i+3] = 255;
  }
  ctx.putImageData(img, 0, 0);
};
c.onclick = async (ev) => {
  const r = c.getBoundingClientRect();
  const x = Math.floor((ev.clientX - r.left) * c.width / r.width), y = Math.floor((ev.clientY - r.top) * c.height / r.height);
  const res = await fetch('/api/cells/' + x + '/' + y);
  info.textContent = res.ok ? JSON.stringify(await res.json(), null, 2) : await res.text();
};
</script>
</body>
</html>
`
