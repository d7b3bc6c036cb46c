// Package smoketest содержит тесты целостности frontcheck уровня системы:
// все команды зарегистрированы, старые имена скриптов ведут на новые
// команды, а JSON-вывод каждой команды соответствует схеме Result.
//
// Unit-тесты логики находятся в пакетах обработчиков.
package smoketest
