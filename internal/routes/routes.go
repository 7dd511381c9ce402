package routes

import (
	"net/http"
	"path/filepath"

	"github.com/fakhrymubarak/city-dashboard/internal/handler"
	"github.com/fakhrymubarak/city-dashboard/internal/middleware"
	"github.com/gorilla/mux"
)

// pages are served as <static_dir>/<name>.html on GET.
var pages = []string{"register", "login", "dashboard", "bmi", "crud", "nodemailer", "qr-code", "weather"}

type Handlers struct {
	Weather        *handler.WeatherHandler
	Auth           *handler.AuthHandler
	Tasks          *handler.TaskHandler
	QR             *handler.QRHandler
	Email          *handler.EmailHandler
	Health         *handler.HealthHandler
	RequireSession func(http.Handler) http.Handler
	StaticDir      string
}

func SetupRoutes(h Handlers) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger)

	router.HandleFunc("/health", h.Health.HandleHealth).Methods(http.MethodGet)

	// auth
	router.HandleFunc("/register", h.Auth.HandleRegister).Methods(http.MethodPost)
	router.HandleFunc("/login", h.Auth.HandleLogin).Methods(http.MethodPost)
	router.HandleFunc("/logout", h.Auth.HandleLogout).Methods(http.MethodGet)

	router.Handle("/get-weather", h.RequireSession(http.HandlerFunc(h.Weather.HandleGetWeather))).Methods(http.MethodPost)

	router.HandleFunc("/tasks", h.Tasks.HandleList).Methods(http.MethodGet)
	router.HandleFunc("/add-task", h.Tasks.HandleCreate).Methods(http.MethodPost)
	router.HandleFunc("/update-task/{id}", h.Tasks.HandleToggle).Methods(http.MethodPost)
	router.HandleFunc("/delete-task/{id}", h.Tasks.HandleDelete).Methods(http.MethodDelete)

	router.HandleFunc("/generate-qr", h.QR.HandleGenerate).Methods(http.MethodPost)
	router.HandleFunc("/send-email", h.Email.HandleSend).Methods(http.MethodPost)

	if h.StaticDir != "" {
		for _, page := range pages {
			file := filepath.Join(h.StaticDir, page+".html")
			router.HandleFunc("/"+page, func(w http.ResponseWriter, r *http.Request) {
				http.ServeFile(w, r, file)
			}).Methods(http.MethodGet)
		}
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(h.StaticDir))).Methods(http.MethodGet)
	}

	return router
}
