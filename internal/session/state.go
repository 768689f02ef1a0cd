package session

import (
	"encoding/json"
	"maps"
)

// Ключи хранилища.
const (
	KeyData       = "data"
	KeyIsLoggedIn = "isLoggedIn"
	KeyRole       = "role"
	KeyToken      = "token"
)

// State состояние авторизации клиента. IsLoggedIn вычисляется из Data и Role и отдельно не задается.
type State struct {
	IsLoggedIn bool
	Role       string
	Data       map[string]any
}

// fromUser единственный способ получить авторизованное состояние. IsLoggedIn истинно только при непустых
// данных юзера и роли.
func fromUser(user map[string]any) State {
	data := maps.Clone(user)
	if data == nil {
		data = map[string]any{}
	}
	role, _ := data["role"].(string)
	return State{
		IsLoggedIn: len(data) > 0 && role != "",
		Role:       role,
		Data:       data,
	}
}

func loggedOut() State {
	return State{Data: map[string]any{}}
}

// clone копия состояния, которую можно отдавать наружу.
func (s State) clone() State {
	s.Data = maps.Clone(s.Data)
	if s.Data == nil {
		s.Data = map[string]any{}
	}
	return s
}

// toValues переводит состояние и токен в набор ключей хранилища. Для неавторизованного состояния набор пуст.
func toValues(s State, token string) (map[string]string, error) {
	values := make(map[string]string, 4) //nolint:mnd
	if !s.IsLoggedIn {
		return values, nil
	}

	data, err := json.Marshal(s.Data)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	values[KeyData] = string(data)
	values[KeyIsLoggedIn] = "true"
	values[KeyRole] = s.Role
	if token != "" {
		values[KeyToken] = token
	}
	return values, nil
}

// fromValues восстанавливает состояние из ключей хранилища. Состояние собирается заново через fromUser,
// поэтому рассогласованные isLoggedIn и role из хранилища не доверяются.
func fromValues(values map[string]string) (State, string) {
	raw, ok := values[KeyData]
	if !ok || values[KeyIsLoggedIn] != "true" {
		return loggedOut(), ""
	}

	var user map[string]any
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user == nil {
		return loggedOut(), ""
	}
	if role := values[KeyRole]; role != "" {
		user["role"] = role
	}

	state := fromUser(user)
	if !state.IsLoggedIn {
		return loggedOut(), ""
	}
	return state, values[KeyToken]
}
