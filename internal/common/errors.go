// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях сервера.
// Ошибки разбиты на четыре класса (валидация, не найдено, предусловие, I/O) —
// по классу HTTP-слой выбирает код ответа, а обработчики — текст для игрока.
package common

import "errors"

// Ошибки игрока и экономики
var (
	// ErrPlayerNotFound — сохранение игрока не найдено
	ErrPlayerNotFound = errors.New("игрок не найден")
	// ErrNotEnoughMoney — недостаточно денег на покупку
	ErrNotEnoughMoney = errors.New("недостаточно денег")
	// ErrNotEnoughEnergy — недостаточно энергии приключений для входа в бой
	ErrNotEnoughEnergy = errors.New("недостаточно энергии приключений")
	// ErrUnknownItem — предмет с таким id не существует в каталоге
	ErrUnknownItem = errors.New("неизвестный предмет")
	// ErrUnknownProperty — недвижимость с таким id не существует
	ErrUnknownProperty = errors.New("неизвестная недвижимость")
	// ErrPropertyOwned — эта недвижимость уже куплена
	ErrPropertyOwned = errors.New("недвижимость уже куплена")
)

// Ошибки прогрессии (уровни, очки характеристик)
var (
	// ErrUnknownStat — характеристики с таким именем не существует
	ErrUnknownStat = errors.New("неизвестная характеристика")
	// ErrNotEnoughStatPoints — попытка вложить больше очков, чем есть
	ErrNotEnoughStatPoints = errors.New("недостаточно очков характеристик")
	// ErrInvalidPoints — количество очков должно быть положительным
	ErrInvalidPoints = errors.New("количество очков должно быть положительным")
)

// Ошибки боя
var (
	// ErrBattleNotFound — бой с таким id не существует (или уже завершён)
	ErrBattleNotFound = errors.New("бой не найден")
	// ErrUnknownSkill — навык не найден в каталоге
	ErrUnknownSkill = errors.New("неизвестный навык")
	// ErrSkillNotEquipped — навык не экипирован в текущий набор
	ErrSkillNotEquipped = errors.New("навык не экипирован")
	// ErrSkillExhausted — у навыка закончились использования
	ErrSkillExhausted = errors.New("у навыка закончились использования")
	// ErrInvalidStage — номер этапа отсутствует или меньше 1
	ErrInvalidStage = errors.New("некорректный номер этапа")
)

// Ошибки коллекции и слияния
var (
	// ErrUnknownMonster — монстр не найден в каталоге
	ErrUnknownMonster = errors.New("неизвестный монстр")
	// ErrMonsterNotCaptured — монстра нет в коллекции игрока
	ErrMonsterNotCaptured = errors.New("монстр не пойман")
	// ErrWrongFusionCount — для слияния нужно ровно три монстра
	ErrWrongFusionCount = errors.New("для слияния нужно ровно три монстра")
	// ErrRarityMismatch — монстры для слияния должны быть одной редкости
	ErrRarityMismatch = errors.New("монстры должны быть одной редкости")
)

// Ошибки навыков и предметов навыков
var (
	// ErrSkillAlreadyOwned — навык уже есть у игрока
	ErrSkillAlreadyOwned = errors.New("навык уже получен")
	// ErrSkillNotInPool — навыка нет в запасе (не экипированных)
	ErrSkillNotInPool = errors.New("навыка нет в запасе")
	// ErrItemNotOwned — предмета нет в инвентаре (количество 0)
	ErrItemNotOwned = errors.New("предмета нет в инвентаре")
)

// Ошибки авторизации
var (
	// ErrLoginTaken — логин уже занят
	ErrLoginTaken = errors.New("логин уже занят")
	// ErrShortCredentials — логин или пароль короче минимума
	ErrShortCredentials = errors.New("логин от 3 символов, пароль от 6")
	// ErrWrongPassword — неверный логин или пароль
	ErrWrongPassword = errors.New("неверный логин или пароль")
	// ErrInvalidToken — токен отсутствует, просрочен или подделан
	ErrInvalidToken = errors.New("недействительный токен")
)

// Классы ошибок. По классу HTTP-слой выбирает код ответа: «не найдено» → 404,
// валидация → 400, предусловие → 409; всё остальное — внутренняя ошибка (500).
var (
	notFoundErrors = []error{
		ErrPlayerNotFound, ErrBattleNotFound, ErrUnknownSkill,
		ErrUnknownMonster, ErrUnknownItem, ErrUnknownProperty,
		ErrMonsterNotCaptured, ErrUnknownStat,
	}
	validationErrors = []error{
		ErrInvalidPoints, ErrInvalidStage, ErrWrongFusionCount,
		ErrShortCredentials,
	}
	preconditionErrors = []error{
		ErrNotEnoughMoney, ErrNotEnoughEnergy, ErrNotEnoughStatPoints,
		ErrSkillNotEquipped, ErrSkillExhausted, ErrRarityMismatch,
		ErrSkillAlreadyOwned, ErrSkillNotInPool, ErrItemNotOwned,
		ErrPropertyOwned, ErrLoginTaken, ErrWrongPassword,
	}
)

// IsNotFound сообщает, относится ли ошибка к классу «не найдено».
func IsNotFound(err error) bool { return isOneOf(err, notFoundErrors) }

// IsValidation сообщает, относится ли ошибка к классу «некорректный ввод».
func IsValidation(err error) bool { return isOneOf(err, validationErrors) }

// IsPrecondition сообщает, относится ли ошибка к классу «нарушено предусловие».
func IsPrecondition(err error) bool { return isOneOf(err, preconditionErrors) }

func isOneOf(err error, list []error) bool {
	for _, e := range list {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
