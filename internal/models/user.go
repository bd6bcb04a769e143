package models

import "strings"

type User struct {
	login    string
	password string
}

func NewUser(login, password string) User {
	return User{login: login, password: password}
}

func (u User) Login() string    { return u.login }
func (u User) Password() string { return u.password }

// Email возвращает полный адрес ящика; логин с "@" считается уже полным.
func (u User) Email(domain string) string {
	if u.login == "" || strings.Contains(u.login, "@") || domain == "" {
		return u.login
	}
	return u.login + "@" + domain
}
