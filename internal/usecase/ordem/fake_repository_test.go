package ordem

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/ordensapp/ordens-api/internal/httperr"
	"github.com/ordensapp/ordens-api/internal/models"
)

var errNotFound = errors.New("record not found")

// fakeRepo aplica os mesmos predicados de ownership da implementação GORM.
type fakeRepo struct {
	users   map[string]*models.User
	clients map[uint]*models.Client
	ordens  map[uint]*models.Ordem

	nextOrdemID uint
	updateCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:       map[string]*models.User{},
		clients:     map[uint]*models.Client{},
		ordens:      map[uint]*models.Ordem{},
		nextOrdemID: 1,
	}
}

func (f *fakeRepo) addUser(id uint, username string) *models.User {
	u := &models.User{ID: id, Username: username}
	f.users[username] = u
	return u
}

func (f *fakeRepo) addClient(id, userID uint, nome string) *models.Client {
	c := &models.Client{ID: id, UserID: userID, Nome: nome}
	f.clients[id] = c
	return c
}

func (f *fakeRepo) addOrdem(clientID uint, nome, status string) *models.Ordem {
	o := &models.Ordem{
		ID:          f.nextOrdemID,
		ClientID:    clientID,
		NomeServico: nome,
		Status:      status,
		CreatedAt:   time.Now().Add(-time.Hour),
		UpdatedAt:   time.Now().Add(-time.Hour),
	}
	f.ordens[o.ID] = o
	f.nextOrdemID++
	return o
}

func (f *fakeRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetClientForUser(_ context.Context, clientID, userID uint) (*models.Client, error) {
	if c, ok := f.clients[clientID]; ok && c.UserID == userID {
		return c, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) CreateOrdem(_ context.Context, userID uint, o *models.Ordem) error {
	c, ok := f.clients[o.ClientID]
	if !ok || c.UserID != userID {
		return httperr.ErrBusiness("resource_not_found")
	}

	o.ID = f.nextOrdemID
	f.nextOrdemID++
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt

	stored := *o
	f.ordens[o.ID] = &stored
	return nil
}

func (f *fakeRepo) GetOrdemForUser(_ context.Context, ordemID, userID uint) (*models.Ordem, error) {
	o, ok := f.ordens[ordemID]
	if !ok {
		return nil, errNotFound
	}
	c, ok := f.clients[o.ClientID]
	if !ok || c.UserID != userID {
		return nil, errNotFound
	}

	copied := *o
	return &copied, nil
}

func (f *fakeRepo) UpdateOrdemForUser(
	_ context.Context,
	ordemID uint,
	userID uint,
	apply func(o *models.Ordem) (map[string]any, error),
) (*models.Ordem, error) {

	o, ok := f.ordens[ordemID]
	if !ok {
		return nil, httperr.ErrBusiness("resource_not_found")
	}
	if c, ok := f.clients[o.ClientID]; !ok || c.UserID != userID {
		return nil, httperr.ErrBusiness("resource_not_found")
	}

	copied := *o
	changes, err := apply(&copied)
	if err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		f.updateCalls++
		applyOrdemChanges(&copied, changes)
		copied.UpdatedAt = time.Now()

		stored := copied
		f.ordens[ordemID] = &stored
	}
	return &copied, nil
}

func applyOrdemChanges(o *models.Ordem, changes map[string]any) {
	for col, v := range changes {
		switch col {
		case "nome_servico":
			o.NomeServico = v.(string)
		case "descricao_servico":
			o.DescricaoServico = v.(string)
		case "valor":
			o.Valor = v.(float64)
		case "status":
			o.Status = v.(string)
		}
	}
}

func (f *fakeRepo) ListOrdensForUser(_ context.Context, userID uint) ([]models.Ordem, error) {
	var out []models.Ordem
	for _, o := range f.ordens {
		if c, ok := f.clients[o.ClientID]; ok && c.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) ListOrdensForClient(_ context.Context, clientID, userID uint) ([]models.Ordem, error) {
	var out []models.Ordem
	for _, o := range f.ordens {
		if o.ClientID != clientID {
			continue
		}
		if c, ok := f.clients[clientID]; ok && c.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
