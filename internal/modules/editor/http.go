package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/attribute/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/auth"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	designerdomain "github.com/eskrenkovic/product-draft-editor/internal/modules/designer/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/commands"
	editordomain "github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/persistence"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/grid"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/product"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type DraftQuery interface {
	GetDataSet() grid.Source
	GetDraftView(ctx context.Context, id editordomain.ProductDraftID, language core.Language) (*persistence.DraftView, error)
}

type ProductRepository interface {
	LoadProduct(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

type AttributeRepository interface {
	Load(ctx context.Context, id domain.AttributeID) (domain.Attribute, error)
}

type AttributeValidationProvider interface {
	Provide(attribute domain.Attribute) (domain.Validator, error)
}

type TemplateRepository interface {
	Load(ctx context.Context, id uuid.UUID) (*designerdomain.Template, error)
}

type ViewTemplateBuilder interface {
	Build(ctx context.Context, template designerdomain.Template, language core.Language) (designerdomain.ViewTemplate, error)
}

type FormValidator interface {
	Validate(form any) error
}

// ProductDraftHTTPHandler serves the draft editing endpoints. Mutating endpoints
// only hand commands over to the bus.
type ProductDraftHTTPHandler struct {
	bus        core.CommandBus
	query      DraftQuery
	provider   editordomain.DraftProvider
	products   ProductRepository
	attributes AttributeRepository
	validation AttributeValidationProvider
	templates  TemplateRepository
	builder    ViewTemplateBuilder
	forms      FormValidator
}

func NewProductDraftHTTPHandler(
	bus core.CommandBus,
	query DraftQuery,
	provider editordomain.DraftProvider,
	products ProductRepository,
	attributes AttributeRepository,
	validation AttributeValidationProvider,
	templates TemplateRepository,
	builder ViewTemplateBuilder,
	forms FormValidator,
) *ProductDraftHTTPHandler {
	return &ProductDraftHTTPHandler{
		bus:        bus,
		query:      query,
		provider:   provider,
		products:   products,
		attributes: attributes,
		validation: validation,
		templates:  templates,
		builder:    builder,
		forms:      forms,
	}
}

// Routes mounts the endpoints under a router already scoped to /{language}.
func (h *ProductDraftHTTPHandler) Routes(r chi.Router) {
	read := r.With(auth.RequirePrivilege(auth.ProductRead))
	create := r.With(auth.RequirePrivilege(auth.ProductCreate))
	update := r.With(auth.RequirePrivilege(auth.ProductUpdate))

	read.Get("/products/drafts", h.HandleGetDrafts)
	create.Post("/products/drafts", h.HandleCreateDraft)
	read.Get("/products/{id}", h.HandleGetDraft)
	update.Put("/products/{id}/draft/persist", h.HandlePersistDraft)
	update.Put("/products/{id}/draft/{attribute}/value", h.HandleChangeDraftAttributeValue)
	read.Get("/products/{id}/draft", h.HandleGetProductDraft)
	read.Get("/products/{id}/template", h.HandleGetProductTemplate)
}

func (h *ProductDraftHTTPHandler) HandleGetDrafts(w http.ResponseWriter, r *http.Request) {
	if _, ok := languageParam(w, r); !ok {
		return
	}

	config, err := grid.ParseRequestGridConfiguration(r.URL.Query())
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	source := h.query.GetDataSet()
	page, err := source.Fetch(r.Context(), config)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.WriteOK(w, r, grid.NewResponse(source.Grid(), page, config))
}

func (h *ProductDraftHTTPHandler) HandleGetDraft(w http.ResponseWriter, r *http.Request) {
	language, ok := languageParam(w, r)
	if !ok {
		return
	}

	draftID, err := editordomain.ParseProductDraftID(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteNotFound(w, r, err.Error())
		return
	}

	view, err := h.query.GetDraftView(r.Context(), draftID, language)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	if view == nil {
		core.WriteNotFound(w, r, fmt.Sprintf("product draft %s not found", draftID.String()))
		return
	}

	core.WriteOK(w, r, view)
}

type CreateProductDraftForm struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

func (h *ProductDraftHTTPHandler) HandleCreateDraft(w http.ResponseWriter, r *http.Request) {
	form, err := core.RequestBody[CreateProductDraftForm](r)
	if err != nil && !errors.Is(err, io.EOF) {
		core.WriteBadRequest(w, r, err)
		return
	}

	if err := h.forms.Validate(form); err != nil {
		core.WriteError(w, r, err)
		return
	}

	command := commands.NewCreateProductDraftCommand(uuid.MustParse(form.ProductID))
	if err := h.bus.Dispatch(r.Context(), command); err != nil {
		core.WriteError(w, r, err)
		return
	}

	location := path.Join(path.Dir(r.URL.Path), command.ID().String())
	core.WriteCreated(w, r, command.ID().String(), location)
}

func (h *ProductDraftHTTPHandler) HandlePersistDraft(w http.ResponseWriter, r *http.Request) {
	p, ok := h.productParam(w, r)
	if !ok {
		return
	}

	draft, err := h.provider.Provide(r.Context(), p)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	command := commands.PersistProductDraftCommand{DraftID: draft.ID()}
	if err := h.bus.Dispatch(r.Context(), command); err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.WriteNoContent(w, r)
}

type ChangeValueRequest struct {
	Value *string `json:"value"`
}

type ChangeValueResponse struct {
	Value *string `json:"value"`
}

// HandleChangeDraftAttributeValue validates non empty values against the
// attribute type. A missing or empty value removes the current one.
func (h *ProductDraftHTTPHandler) HandleChangeDraftAttributeValue(w http.ResponseWriter, r *http.Request) {
	language, ok := languageParam(w, r)
	if !ok {
		return
	}

	p, ok := h.productParam(w, r)
	if !ok {
		return
	}

	attributeID, err := domain.ParseAttributeID(chi.URLParam(r, "attribute"))
	if err != nil {
		core.WriteNotFound(w, r, err.Error())
		return
	}

	request, err := core.RequestBody[ChangeValueRequest](r)
	if err != nil && !errors.Is(err, io.EOF) {
		core.WriteBadRequest(w, r, err)
		return
	}

	draft, err := h.provider.Provide(r.Context(), p)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	attribute, err := h.attributes.Load(r.Context(), attributeID)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	command := commands.ChangeProductAttributeValueCommand{
		DraftID:     draft.ID(),
		AttributeID: attributeID,
		Language:    language,
	}

	validator, err := h.validation.Provide(attribute)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	if request.Value != nil && *request.Value != "" {
		if !validator.IsValid(attribute, *request.Value) {
			message := fmt.Sprintf("%s is incorrect value for %s attribute", *request.Value, attribute.Type)
			core.WriteError(w, r, core.NewValidationError("form validation error").Add("value", message))
			return
		}

		command.Value = request.Value
	}

	if err := h.bus.Dispatch(r.Context(), command); err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.WriteOK(w, r, ChangeValueResponse{Value: command.Value})
}

type ProductDraftResponse struct {
	ID        string         `json:"id"`
	ProductID string         `json:"product_id"`
	Type      string         `json:"type"`
	Applied   bool           `json:"applied"`
	Values    product.Values `json:"attributes"`
}

func (h *ProductDraftHTTPHandler) HandleGetProductDraft(w http.ResponseWriter, r *http.Request) {
	p, ok := h.productParam(w, r)
	if !ok {
		return
	}

	draft, err := h.provider.Provide(r.Context(), p)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.WriteOK(w, r, ProductDraftResponse{
		ID:        draft.ID().String(),
		ProductID: draft.ProductID().String(),
		Type:      draft.Type(),
		Applied:   draft.Applied(),
		Values:    draft.Values(),
	})
}

func (h *ProductDraftHTTPHandler) HandleGetProductTemplate(w http.ResponseWriter, r *http.Request) {
	language, ok := languageParam(w, r)
	if !ok {
		return
	}

	p, ok := h.productParam(w, r)
	if !ok {
		return
	}

	template, err := h.templates.Load(r.Context(), p.TemplateID)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	if template == nil {
		panic(fmt.Sprintf("template %s of product %s does not exist", p.TemplateID.String(), p.ID.String()))
	}

	view, err := h.builder.Build(r.Context(), *template, language)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.WriteOK(w, r, view)
}

func languageParam(w http.ResponseWriter, r *http.Request) (core.Language, bool) {
	language, err := core.ParseLanguage(chi.URLParam(r, "language"))
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return "", false
	}

	return language, true
}

// productParam loads the product named by the {id} path segment. Anything
// that is not a canonical uuid does not match the route and is a 404.
func (h *ProductDraftHTTPHandler) productParam(w http.ResponseWriter, r *http.Request) (*product.Product, bool) {
	raw := chi.URLParam(r, "id")
	if !core.IsUUID(raw) {
		core.WriteNotFound(w, r, fmt.Sprintf("invalid product id '%s'", raw))
		return nil, false
	}

	p, err := h.products.LoadProduct(r.Context(), uuid.MustParse(raw))
	if err != nil {
		core.WriteError(w, r, err)
		return nil, false
	}

	return p, true
}
