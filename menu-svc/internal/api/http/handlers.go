package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"campus-canteen/apperr"
	"campus-canteen/auth"
	"campus-canteen/menu-svc/internal/domain"
	"campus-canteen/menu-svc/internal/service"
	"campus-canteen/metrics"

	"github.com/gorilla/mux"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Handler struct {
	Menu      service.MenuServiceInterface
	Settings  service.SettingsServiceInterface
	Profiles  service.ProfileServiceInterface
	Auth      *auth.Middleware
	UploadDir string
	Location  *time.Location
}

func NewHandler(menuSvc service.MenuServiceInterface, settingsSvc service.SettingsServiceInterface,
	profileSvc service.ProfileServiceInterface, authMW *auth.Middleware, uploadDir string, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		Menu:      menuSvc,
		Settings:  settingsSvc,
		Profiles:  profileSvc,
		Auth:      authMW,
		UploadDir: uploadDir,
		Location:  loc,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(metrics.Instrument("menu-svc"))

	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.UploadDir))))

	r.HandleFunc("/api/categories", h.getCategories).Methods("GET")
	r.Handle("/api/categories", h.Auth.Admin(h.createCategory)).Methods("POST")
	r.Handle("/api/categories/{id:[0-9]+}", h.Auth.Admin(h.updateCategory)).Methods("PUT")
	r.Handle("/api/categories/{id:[0-9]+}", h.Auth.Admin(h.deleteCategory)).Methods("DELETE")

	r.HandleFunc("/api/menu-items", h.getMenuItems).Methods("GET")
	r.HandleFunc("/api/menu-items/{id:[0-9]+}", h.getMenuItem).Methods("GET")
	r.Handle("/api/menu-items", h.Auth.Admin(h.createMenuItem)).Methods("POST")
	r.Handle("/api/menu-items/{id:[0-9]+}", h.Auth.Admin(h.updateMenuItem)).Methods("PUT")
	r.Handle("/api/menu-items/{id:[0-9]+}", h.Auth.Admin(h.deleteMenuItem)).Methods("DELETE")
	r.Handle("/api/menu-items/{id:[0-9]+}/image", h.Auth.Admin(h.uploadMenuItemImage)).Methods("POST")

	r.HandleFunc("/api/settings", h.getSettings).Methods("GET")
	r.Handle("/api/settings", h.Auth.Admin(h.updateSettings)).Methods("PUT")

	r.Handle("/api/users/me", h.Auth.Wrap(h.getMe)).Methods("GET")
	r.Handle("/api/users/me", h.Auth.Wrap(h.registerMe)).Methods("POST")
	r.Handle("/api/users", h.Auth.Admin(h.getUsers)).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "menu-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Menu.ListCategories(r.Context())
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.MenuCategory
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Menu.CreateCategory(r.Context(), &category); err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var category domain.MenuCategory
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	category.ID = id
	if err := h.Menu.UpdateCategory(r.Context(), &category); err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Menu.DeleteCategory(r.Context(), id); err != nil {
		apperr.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// getMenuItems lists the catalog. With ?available=now only items that can be
// ordered at the current local time are returned.
func (h *Handler) getMenuItems(w http.ResponseWriter, r *http.Request) {
	var (
		items []domain.MenuItem
		err   error
	)
	if r.URL.Query().Get("available") == "now" {
		items, err = h.Menu.ListAvailableItems(r.Context(), time.Now().In(h.Location))
	} else {
		items, err = h.Menu.ListItems(r.Context())
	}
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	item, err := h.Menu.GetItem(r.Context(), id)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Menu.CreateItem(r.Context(), &item); err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item.ID = id
	if err := h.Menu.UpdateItem(r.Context(), &item); err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Menu.DeleteItem(r.Context(), id); err != nil {
		apperr.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) uploadMenuItemImage(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Error retrieving the file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext, ok := allowedImageTypes[header.Header.Get("Content-Type")]
	if !ok {
		http.Error(w, "Invalid file type. Only JPEG, PNG, GIF, WebP allowed", http.StatusBadRequest)
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0755); err != nil {
		http.Error(w, "Failed to create upload directory", http.StatusInternalServerError)
		return
	}

	filename := "menu_item_" + strconv.Itoa(id) + "_" + strconv.FormatInt(time.Now().UnixNano(), 36) + ext
	dst, err := os.Create(filepath.Join(h.UploadDir, filename))
	if err != nil {
		http.Error(w, "Failed to create file", http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	imageURL := "/uploads/" + filename
	if err := h.Menu.UpdateImage(r.Context(), id, imageURL); err != nil {
		os.Remove(filepath.Join(h.UploadDir, filename))
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Image uploaded successfully",
		"image_url": imageURL,
	})
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.Get(r.Context())
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.CanteenSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Settings.Update(r.Context(), &settings); err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	profile, err := h.Profiles.Me(r.Context(), id)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) registerMe(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	var profile auth.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Profiles.Register(r.Context(), id, &profile); err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Profiles.List(r.Context())
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
