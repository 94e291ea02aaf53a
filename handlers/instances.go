package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/openshelf/locallibrary/models"
	"github.com/openshelf/locallibrary/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InstancesHandler struct {
	Store store.Catalog
}

type InstanceRequest struct {
	Book    string     `json:"book"`
	Imprint string     `json:"imprint"`
	Status  string     `json:"status"`
	DueBack *time.Time `json:"dueBack"`
}

var instanceFieldRules = []FieldRule{
	{Field: "book", Valid: NotEmpty, Message: "Book must be specified"},
	{Field: "imprint", Valid: NotEmpty, Message: "Imprint must be specified"},
}

func (h *InstancesHandler) List(w http.ResponseWriter, r *http.Request) {
	insts, err := h.Store.AllInstances(r.Context())
	if err != nil {
		http.Error(w, `{"error":"failed to list book instances"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(insts)
}

// Create inserts a new copy of a book. POST /catalog/bookinstances
// Status defaults to Maintenance when omitted.
func (h *InstancesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req InstanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	values := map[string]string{"book": req.Book, "imprint": req.Imprint}
	if errs := ValidateFields(values, instanceFieldRules); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	bookID, err := primitive.ObjectIDFromHex(req.Book)
	if err != nil {
		http.Error(w, `{"error":"invalid book id"}`, http.StatusBadRequest)
		return
	}
	if req.Status != "" && !models.IsValidInstanceStatus(req.Status) {
		http.Error(w, `{"error":"invalid status"}`, http.StatusBadRequest)
		return
	}
	inst := &models.BookInstance{
		BookID:  bookID,
		Imprint: req.Imprint,
		Status:  req.Status,
	}
	if inst.Status == models.StatusLoaned {
		inst.DueBack = req.DueBack
	}
	id, err := h.Store.InsertInstance(r.Context(), inst)
	if err != nil {
		http.Error(w, `{"error":"failed to create book instance"}`, http.StatusInternalServerError)
		return
	}
	inst.ID = id
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", inst.URL())
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(inst)
}
