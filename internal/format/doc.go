// Package format переписывает разобранный файл в текст по правилам конфигурации.
//
// Назначение: узловые форматтеры (items, выражения, импорты, цепочки,
// комментарии) и общий алгоритм раскладки списков (lists.go).
// Не делает: IO, выбор файлов, режимы записи (см. internal/driver).
// Зависимости: internal/ast, internal/config, internal/parser, internal/session.
package format
