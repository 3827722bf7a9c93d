package repository

import (
	"context"
	"sort"

	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/usecase/interfaces"
)

const defaultClientsTableName = "clients"

type rolesItem struct {
	CanViewOperations    bool `dynamodbav:"can_view_operations"`
	CanEditOperations    bool `dynamodbav:"can_edit_operations"`
	CanApproveOperations bool `dynamodbav:"can_approve_operations"`
	IsAdmin              bool `dynamodbav:"is_admin"`
	IsRepresentative     bool `dynamodbav:"is_representative"`
}

type clientItem struct {
	ID             string    `dynamodbav:"id"`
	Name           string    `dynamodbav:"name"`
	DocumentNumber string    `dynamodbav:"document_number"`
	Type           string    `dynamodbav:"type"`
	Segment        string    `dynamodbav:"segment"`
	Status         string    `dynamodbav:"status"`
	ContactName    string    `dynamodbav:"contact_name"`
	ContactEmail   string    `dynamodbav:"contact_email"`
	ContactPhone   string    `dynamodbav:"contact_phone"`
	Street         string    `dynamodbav:"street"`
	City           string    `dynamodbav:"city"`
	State          string    `dynamodbav:"state"`
	Roles          rolesItem `dynamodbav:"user_roles"`
	CreatedAt      string    `dynamodbav:"created_at"`
	UpdatedAt      string    `dynamodbav:"updated_at"`
}

// ClientDynamoRepository persists Client entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Listings are Scans with equality/range filters; the text search runs on the
// scanned page since DynamoDB has no case-insensitive contains.
type ClientDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb dynamoAPI) *ClientDynamoRepository {
	return &ClientDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CLIENTS_TABLE", defaultClientsTableName),
	}
}

// TableName is the table the repository reads and writes.
func (r *ClientDynamoRepository) TableName() string {
	return r.tableName
}

func (r *ClientDynamoRepository) Create(ctx context.Context, c entities.Client) (entities.Client, error) {
	if _, err := putItem(ctx, r.ddb, r.tableName, toClientItem(c), false); err != nil {
		return entities.Client{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) GetByID(ctx context.Context, id string) (entities.Client, error) {
	var it clientItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Client{}, err
	}
	return fromClientItem(it), nil
}

func (r *ClientDynamoRepository) Search(ctx context.Context, f entities.ClientFilter) ([]entities.Client, error) {
	var fb filterBuilder
	fb.equal("status", string(f.Status))
	fb.equal("type", string(f.Type))
	fb.equal("segment", f.Segment)
	fb.between("created_at", f.From, f.To)

	items, err := scanAll[clientItem](ctx, r.ddb, r.tableName, fb)
	if err != nil {
		return nil, err
	}

	out := make([]entities.Client, 0, len(items))
	for _, it := range items {
		c := fromClientItem(it)
		if !entities.MatchesSearch(f.Search, c.Name, c.DocumentNumber, entities.DocumentDigits(c.DocumentNumber), c.ContactName, c.ContactEmail) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ClientDynamoRepository) Update(ctx context.Context, c entities.Client) (entities.Client, error) {
	ok, err := putItem(ctx, r.ddb, r.tableName, toClientItem(c), true)
	if err != nil || !ok {
		return entities.Client{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteItem(ctx, r.ddb, r.tableName, id)
}

func toClientItem(c entities.Client) clientItem {
	return clientItem{
		ID:             c.ID,
		Name:           c.Name,
		DocumentNumber: c.DocumentNumber,
		Type:           string(c.Type),
		Segment:        c.Segment,
		Status:         string(c.Status),
		ContactName:    c.ContactName,
		ContactEmail:   c.ContactEmail,
		ContactPhone:   c.ContactPhone,
		Street:         c.Street,
		City:           c.City,
		State:          c.State,
		Roles:          rolesItem(c.Roles),
		CreatedAt:      formatItemTime(c.CreatedAt),
		UpdatedAt:      formatItemTime(c.UpdatedAt),
	}
}

func fromClientItem(it clientItem) entities.Client {
	return entities.Client{
		ID:             it.ID,
		Name:           it.Name,
		DocumentNumber: it.DocumentNumber,
		Type:           entities.ClientType(it.Type),
		Segment:        it.Segment,
		Status:         entities.ClientStatus(it.Status),
		ContactName:    it.ContactName,
		ContactEmail:   it.ContactEmail,
		ContactPhone:   it.ContactPhone,
		Street:         it.Street,
		City:           it.City,
		State:          it.State,
		Roles:          entities.Capabilities(it.Roles),
		CreatedAt:      parseItemTime(it.CreatedAt),
		UpdatedAt:      parseItemTime(it.UpdatedAt),
	}
}
