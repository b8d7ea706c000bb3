package stub

import (
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sweetshop/sweetshop-client/internal/model"
)

// account is a registered user. Only the bcrypt hash of the password is
// kept, mirroring the real backend.
type account struct {
	Username string
	Email    string
	Hash     string
	Role     model.Role
}

// hashPassword returns the bcrypt hash for a plain password.
func hashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// verifyPassword safely compares a bcrypt hash and a plain password.
func verifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// addAccount registers an account under the server lock. Returns false
// when the username is taken.
func (s *Server) addAccount(username, email, password string, role model.Role) (bool, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(username)
	if _, exists := s.accounts[key]; exists {
		return false, nil
	}
	s.accounts[key] = account{Username: username, Email: email, Hash: hash, Role: role}
	return true, nil
}

// findAccount looks an account up by username, case-insensitively.
func (s *Server) findAccount(username string) (account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[strings.ToLower(username)]
	return acct, ok
}

// insertSweet stores a sweet, assigning the next identifier when the
// record has none. Caller holds s.mu.
func (s *Server) insertSweetLocked(sweet model.Sweet) model.Sweet {
	if sweet.ID == "" {
		sweet.ID = strconv.Itoa(s.nextID)
		s.nextID++
	}
	s.sweets[sweet.ID] = sweet
	s.order = append(s.order, sweet.ID)
	return sweet
}

// listSweetsLocked returns the catalog in insertion order. Caller holds
// s.mu.
func (s *Server) listSweetsLocked() []model.Sweet {
	out := make([]model.Sweet, 0, len(s.order))
	for _, id := range s.order {
		if sweet, ok := s.sweets[id]; ok {
			out = append(out, sweet)
		}
	}
	return out
}

// removeSweetLocked deletes a sweet and its position in the listing
// order. Caller holds s.mu.
func (s *Server) removeSweetLocked(id string) bool {
	if _, ok := s.sweets[id]; !ok {
		return false
	}
	delete(s.sweets, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}
