// Package catalog загружает статичные данные игры из JSON-файлов.
// Отсутствующий файл — это предупреждение и пустой список, а не падение:
// сервер должен подниматься даже с неполным комплектом данных (fail-open).
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Catalog — справочник всех статичных данных, проиндексированный по id/имени.
type Catalog struct {
	monsters   []Monster
	skills     []Skill
	dungeons   []Dungeon
	properties []Property

	monsterByID  map[string]*Monster
	skillByName  map[string]*Skill
	dungeonByID  map[string]*Dungeon
	propertyByID map[string]*Property
}

// Load читает все справочники из каталога dataDir.
func Load(dataDir string) (*Catalog, error) {
	c := &Catalog{}

	if err := loadFile(dataDir, "monsters.json", &c.monsters); err != nil {
		return nil, err
	}
	if err := loadFile(dataDir, "skills.json", &c.skills); err != nil {
		return nil, err
	}
	if err := loadFile(dataDir, "dungeons.json", &c.dungeons); err != nil {
		return nil, err
	}
	if err := loadFile(dataDir, "properties.json", &c.properties); err != nil {
		return nil, err
	}

	c.index()

	log.WithFields(log.Fields{
		"monsters":   len(c.monsters),
		"skills":     len(c.skills),
		"dungeons":   len(c.dungeons),
		"properties": len(c.properties),
	}).Info("Справочники загружены")

	return c, nil
}

// loadFile читает один JSON-файл. Отсутствие файла — не ошибка.
func loadFile(dir, name string, dst any) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("file", path).Warn("Файл справочника не найден, список будет пустым")
			return nil
		}
		return fmt.Errorf("чтение %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("разбор %s: %w", path, err)
	}
	return nil
}

func (c *Catalog) index() {
	c.monsterByID = make(map[string]*Monster, len(c.monsters))
	for i := range c.monsters {
		c.monsterByID[c.monsters[i].ID] = &c.monsters[i]
	}
	c.skillByName = make(map[string]*Skill, len(c.skills))
	for i := range c.skills {
		c.skillByName[c.skills[i].Name] = &c.skills[i]
	}
	c.dungeonByID = make(map[string]*Dungeon, len(c.dungeons))
	for i := range c.dungeons {
		c.dungeonByID[c.dungeons[i].ID] = &c.dungeons[i]
	}
	c.propertyByID = make(map[string]*Property, len(c.properties))
	for i := range c.properties {
		c.propertyByID[c.properties[i].ID] = &c.properties[i]
	}
}

// Monster возвращает монстра по id.
func (c *Catalog) Monster(id string) (*Monster, bool) {
	m, ok := c.monsterByID[id]
	return m, ok
}

// Skill возвращает навык по имени.
func (c *Catalog) Skill(name string) (*Skill, bool) {
	s, ok := c.skillByName[name]
	return s, ok
}

// Dungeon возвращает подземелье по id.
func (c *Catalog) Dungeon(id string) (*Dungeon, bool) {
	d, ok := c.dungeonByID[id]
	return d, ok
}

// Property возвращает недвижимость по id.
func (c *Catalog) Property(id string) (*Property, bool) {
	p, ok := c.propertyByID[id]
	return p, ok
}

// Dungeons возвращает весь список подземелий.
func (c *Catalog) Dungeons() []Dungeon { return c.dungeons }

// Skills возвращает весь список навыков (для выпадения случайной карты).
func (c *Catalog) Skills() []Skill { return c.skills }

// Monsters возвращает весь список монстров.
func (c *Catalog) Monsters() []Monster { return c.monsters }

// MonstersByRarity возвращает монстров заданной редкости.
func (c *Catalog) MonstersByRarity(rarity string) []Monster {
	var out []Monster
	for _, m := range c.monsters {
		if m.Rarity == rarity {
			out = append(out, m)
		}
	}
	return out
}

// Properties возвращает весь список недвижимости.
func (c *Catalog) Properties() []Property { return c.properties }
