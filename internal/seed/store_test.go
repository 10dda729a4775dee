package seed

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"library-store/internal/domain/catalog"
	"library-store/internal/domain/customer"
	"library-store/internal/domain/membership"
	"library-store/internal/domain/role"
	"library-store/internal/pkg/apperrors"
)

// memStore is an in-memory store that enforces the same foreign keys as the
// PostgreSQL schema.
type memStore struct {
	mu             sync.Mutex
	memberships    map[int64]membership.MembershipType
	genres         map[int64]catalog.Genre
	books          []catalog.Book
	roles          map[string]role.Role
	customers      map[int64]*customer.Customer
	customerRoles  map[int64][]string
	nextCustomerID int64
	countErr       map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		memberships:   map[int64]membership.MembershipType{},
		genres:        map[int64]catalog.Genre{},
		roles:         map[string]role.Role{},
		customers:     map[int64]*customer.Customer{},
		customerRoles: map[int64][]string{},
		countErr:      map[string]error{},
	}
}

func (s *memStore) repositories() Repositories {
	return Repositories{
		Memberships: memMemberships{s},
		Genres:      memGenres{s},
		Books:       memBooks{s},
		Roles:       memRoles{s},
		Customers:   memCustomers{s},
	}
}

func fkError(table string, key any) error {
	return fmt.Errorf("%w: insert violates foreign key on %s (%v)", apperrors.ErrInvalidArgument, table, key)
}

type memMemberships struct{ s *memStore }

func (m memMemberships) FindAll(ctx context.Context) ([]*membership.MembershipType, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]*membership.MembershipType, 0, len(m.s.memberships))
	for _, mt := range m.s.memberships {
		mt := mt
		out = append(out, &mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memMemberships) FindByID(ctx context.Context, id int64) (*membership.MembershipType, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	mt, ok := m.s.memberships[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &mt, nil
}

func (m memMemberships) Count(ctx context.Context) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.countErr[CollectionMembershipTypes]; err != nil {
		return 0, err
	}
	return int64(len(m.s.memberships)), nil
}

func (m memMemberships) InsertMany(ctx context.Context, types []membership.MembershipType) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, mt := range types {
		if _, dup := m.s.memberships[mt.ID]; dup {
			return apperrors.ErrAlreadyExists
		}
	}
	for _, mt := range types {
		m.s.memberships[mt.ID] = mt
	}
	return nil
}

type memGenres struct{ s *memStore }

func (g memGenres) FindAll(ctx context.Context) ([]*catalog.Genre, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	out := make([]*catalog.Genre, 0, len(g.s.genres))
	for _, genre := range g.s.genres {
		genre := genre
		out = append(out, &genre)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (g memGenres) Count(ctx context.Context) (int64, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	return int64(len(g.s.genres)), nil
}

func (g memGenres) InsertMany(ctx context.Context, genres []catalog.Genre) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	for _, genre := range genres {
		g.s.genres[genre.ID] = genre
	}
	return nil
}

type memBooks struct{ s *memStore }

func (b memBooks) FindAll(ctx context.Context) ([]*catalog.Book, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	out := make([]*catalog.Book, 0, len(b.s.books))
	for i := range b.s.books {
		book := b.s.books[i]
		out = append(out, &book)
	}
	return out, nil
}

func (b memBooks) FindByID(ctx context.Context, bookID int64) (*catalog.Book, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	for i := range b.s.books {
		if b.s.books[i].ID == bookID {
			book := b.s.books[i]
			return &book, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (b memBooks) Count(ctx context.Context) (int64, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	return int64(len(b.s.books)), nil
}

func (b memBooks) InsertMany(ctx context.Context, books []catalog.Book) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	for _, book := range books {
		if _, ok := b.s.genres[book.GenreID]; !ok {
			return fkError("books.genre_id", book.GenreID)
		}
	}
	for _, book := range books {
		book.ID = int64(len(b.s.books) + 1)
		b.s.books = append(b.s.books, book)
	}
	return nil
}

type memRoles struct{ s *memStore }

func (r memRoles) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.roles)), nil
}

func (r memRoles) InsertMany(ctx context.Context, roles []role.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ro := range roles {
		r.s.roles[ro.ID] = ro
	}
	return nil
}

func (r memRoles) FindByNormalizedName(ctx context.Context, normalizedName string) (*role.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ro := range r.s.roles {
		if ro.NormalizedName == normalizedName {
			ro := ro
			return &ro, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r memRoles) AssignToCustomer(ctx context.Context, customerID int64, roleID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[customerID]; !ok {
		return fkError("customer_roles.customer_id", customerID)
	}
	ro, ok := r.s.roles[roleID]
	if !ok {
		return fkError("customer_roles.role_id", roleID)
	}
	r.s.customerRoles[customerID] = append(r.s.customerRoles[customerID], ro.NormalizedName)
	return nil
}

type memCustomers struct{ s *memStore }

func (c memCustomers) load(id int64) *customer.Customer {
	stored := *c.s.customers[id]
	stored.Roles = append([]string(nil), c.s.customerRoles[id]...)
	if mt, ok := c.s.memberships[stored.MembershipTypeID]; ok {
		stored.MembershipTypeName = mt.Name
	}
	return &stored
}

func (c memCustomers) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.customers[customerID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	return c.load(customerID), nil
}

func (c memCustomers) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for id, cust := range c.s.customers {
		if cust.Email != nil && strings.EqualFold(*cust.Email, email) {
			return c.load(id), nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (c memCustomers) sorted(filter func(*customer.Customer) bool) []*customer.Customer {
	out := make([]*customer.Customer, 0, len(c.s.customers))
	for id, cust := range c.s.customers {
		if filter(cust) {
			out = append(out, c.load(id))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}

func (c memCustomers) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.sorted(func(*customer.Customer) bool { return true }), nil
}

func (c memCustomers) FindNewsletterSubscribers(ctx context.Context) ([]*customer.Customer, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.sorted(func(cust *customer.Customer) bool { return cust.HasNewsletterSubscribed }), nil
}

func (c memCustomers) insert(cust *customer.Customer) error {
	if _, ok := c.s.memberships[cust.MembershipTypeID]; !ok {
		return fkError("customers.membership_type_id", cust.MembershipTypeID)
	}
	c.s.nextCustomerID++
	cust.CustomerID = c.s.nextCustomerID
	stored := *cust
	stored.Roles = nil
	c.s.customers[cust.CustomerID] = &stored
	return nil
}

func (c memCustomers) Add(ctx context.Context, cust *customer.Customer) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.insert(cust)
}

func (c memCustomers) Update(ctx context.Context, customerID int64, update customer.CustomerUpdate) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	stored, ok := c.s.customers[customerID]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.Apply(update)
	return nil
}

func (c memCustomers) Count(ctx context.Context) (int64, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return int64(len(c.s.customers)), nil
}

func (c memCustomers) InsertMany(ctx context.Context, customers []customer.Customer) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for i := range customers {
		if _, ok := c.s.memberships[customers[i].MembershipTypeID]; !ok {
			return fkError("customers.membership_type_id", customers[i].MembershipTypeID)
		}
	}
	for i := range customers {
		if err := c.insert(&customers[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c memCustomers) InsertWithRoles(ctx context.Context, customers []*customer.Customer) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	roleIDs := map[string]bool{}
	for _, ro := range c.s.roles {
		roleIDs[ro.NormalizedName] = true
	}
	for _, cust := range customers {
		if _, ok := c.s.memberships[cust.MembershipTypeID]; !ok {
			return fkError("customers.membership_type_id", cust.MembershipTypeID)
		}
		for _, name := range cust.Roles {
			if !roleIDs[name] {
				return fmt.Errorf("role %q: %w", name, apperrors.ErrNotFound)
			}
		}
	}
	for _, cust := range customers {
		if err := c.insert(cust); err != nil {
			return err
		}
		c.s.customerRoles[cust.CustomerID] = append(c.s.customerRoles[cust.CustomerID], cust.Roles...)
	}
	return nil
}
