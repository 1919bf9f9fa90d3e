// Package session holds the state shared by everything rendering one page:
// whether the page is still mounted, the read-in-flight flag, the last read
// error and the active user role. A Page lives exactly as long as the page
// (or request) it was created for and is passed explicitly to its users.
package session

import (
	"strings"
	"sync"
)

type Role string

const (
	RoleCustomer  Role = "customer"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

func (r Role) Label() string {
	switch r {
	case RoleOrganizer:
		return "Organizer"
	case RoleAdmin:
		return "Admin"
	default:
		return "Customer"
	}
}

// ParseRole maps a raw header or flag value onto a Role, defaulting to customer.
func ParseRole(raw string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleOrganizer:
		return RoleOrganizer
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleCustomer
	}
}

type Page struct {
	mu       sync.RWMutex
	mounted  bool
	inFlight int
	lastErr  string
	role     Role
}

func NewPage(role Role) *Page {
	if role == "" {
		role = RoleCustomer
	}
	return &Page{role: role}
}

func (p *Page) Mount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mounted = true
}

func (p *Page) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mounted = false
}

func (p *Page) Mounted() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mounted
}

// BeginRead marks one more read as in flight.
func (p *Page) BeginRead() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight++
}

func (p *Page) EndRead() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inFlight > 0 {
		p.inFlight--
	}
}

// Loading is true while at least one read is in flight.
func (p *Page) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.inFlight > 0
}

func (p *Page) SetError(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastErr = msg
}

func (p *Page) ClearError() {
	p.SetError("")
}

func (p *Page) LastError() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

func (p *Page) Role() Role {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.role
}

func (p *Page) SetRole(role Role) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.role = role
}
