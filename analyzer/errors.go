package analyzer

import "errors"

// Ошибки анализатора. Все ошибки, которые возвращает пакет, оборачивают одну из них,
// поэтому вызывающий код может проверять их через errors.Is.
var (
	// ErrOpen - ресурс не найден, поврежден или не согласован с другими ресурсами.
	ErrOpen = errors.New("ошибка открытия ресурса")
	// ErrDecode - входной текст не является корректным UTF-8.
	ErrDecode = errors.New("ошибка декодирования UTF-8")
	// ErrNullInput - вместо текста или ключа передан nil.
	ErrNullInput = errors.New("пустой указатель на входные данные")
	// ErrEmptyKey - пустой ключ там, где он недопустим.
	ErrEmptyKey = errors.New("пустой ключ")
	// ErrFormat - некорректная запись в упакованном значении словаря.
	ErrFormat = errors.New("неверный формат значения словаря")
	// ErrAdjacency - попытка объединить несмежные слова.
	ErrAdjacency = errors.New("слова не являются смежными")
	// ErrIndex - индекс тега или значения вне допустимого диапазона.
	ErrIndex = errors.New("индекс вне диапазона")
	// ErrInvariantViolation - решетка не покрывает предложение целиком. Это ошибка построения, а не входных данных.
	ErrInvariantViolation = errors.New("нарушен инвариант решетки")
	// ErrInvalidState - вызов в состоянии, для которого операция не определена.
	ErrInvalidState = errors.New("недопустимое состояние")
	// ErrOption - не удалось разобрать строку опций.
	ErrOption = errors.New("неверная строка опций")
	// ErrHandle - дескриптор не зарегистрирован или уже закрыт.
	ErrHandle = errors.New("неверный дескриптор")
	// ErrClosed - анализатор еще не открыт или уже закрыт.
	ErrClosed = errors.New("анализатор не открыт")
)
