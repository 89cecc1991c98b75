package internal

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mstanic/liftlog/pkg"
)

type MiscHandler struct {
	versionInfo string
}

func NewMiscHandler(mainRouter *mux.Router, versionInfo string) *MiscHandler {
	handler := &MiscHandler{
		versionInfo: versionInfo,
	}

	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET", "OPTIONS").Name("health")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")

	return handler
}

func (handler *MiscHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks")
}

func (handler *MiscHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	healthResp := fmt.Sprintf(`{"ok":true,"time":"%s"}`, time.Now().UTC().Format(time.RFC3339))
	pkg.WriteJSONResponseOK(w, healthResp)
}

func (handler *MiscHandler) handleGetVersionInfo(w http.ResponseWriter, r *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}
