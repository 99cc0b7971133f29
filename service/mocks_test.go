package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iamsurajx/new-seller-server/media"
	"github.com/iamsurajx/new-seller-server/models"
	"github.com/iamsurajx/new-seller-server/repository"
)

// mockStore implements media.Store and records every call in order so tests
// can assert on call sequencing (destroy-before-upload, image-before-video).
type mockStore struct {
	ops       []string // "upload:<kind>" / "destroy:<kind>:<publicID>"
	uploads   int
	destroys  []string
	uploadErr map[media.Kind]error
	nextID    int
}

func (m *mockStore) Upload(_ context.Context, _ string, kind media.Kind) (media.Asset, error) {
	if err := m.uploadErr[kind]; err != nil {
		return media.Asset{}, err
	}
	m.uploads++
	m.nextID++
	id := fmt.Sprintf("asset%d", m.nextID)
	m.ops = append(m.ops, "upload:"+string(kind))
	return media.Asset{
		URL:      fmt.Sprintf("https://res.cloudinary.com/demo/%s/upload/v1/%s.jpg", kind, id),
		PublicID: id,
	}, nil
}

func (m *mockStore) Destroy(_ context.Context, publicID string, kind media.Kind) error {
	m.ops = append(m.ops, "destroy:"+string(kind)+":"+publicID)
	m.destroys = append(m.destroys, publicID)
	return nil
}

// mockProductRepo keeps products in memory and shares the op log with the
// store so cross-component ordering is visible.
type mockProductRepo struct {
	store     *mockStore
	products  map[string]*models.Product
	createErr error
	creates   int
	deletes   int
}

func newMockProductRepo(store *mockStore) *mockProductRepo {
	return &mockProductRepo{store: store, products: map[string]*models.Product{}}
}

func (m *mockProductRepo) Create(_ context.Context, product *models.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	product.ID = primitive.NewObjectID()
	m.products[product.ID.Hex()] = product
	m.creates++
	return nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id string) (*models.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (m *mockProductRepo) FindAll(context.Context) ([]models.Product, error) {
	all := []models.Product{}
	for _, p := range m.products {
		all = append(all, *p)
	}
	return all, nil
}

func (m *mockProductRepo) Update(_ context.Context, product *models.Product) error {
	if _, ok := m.products[product.ID.Hex()]; !ok {
		return repository.ErrProductNotFound
	}
	m.products[product.ID.Hex()] = product
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	m.deletes++
	if m.store != nil {
		m.store.ops = append(m.store.ops, "repo:delete")
	}
	return nil
}
