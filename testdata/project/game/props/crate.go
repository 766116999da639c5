components {
  id: "crate"
  component: "/scripts/game/crate.script"
  properties {
    id: "health"
    value: "25.0"
    type: PROPERTY_TYPE_NUMBER
  }
  properties {
    id: "spawn"
    value: "1.0, 2.0, 0.0"
    type: PROPERTY_TYPE_VECTOR3
  }
  properties {
    id: "loot"
    value: "coin"
    type: PROPERTY_TYPE_HASH
  }
  properties {
    id: "breakable"
    value: "true"
    type: PROPERTY_TYPE_BOOLEAN
  }
}
embedded_components {
  id: "sprite"
  type: "sprite"
  data: "default_animation: \"arrow_spin\"\n"
  "material: \"/builtins/materials/sprite.material\"\n"
  "textures {\n"
  "  sampler: \"texture_sampler\"\n"
  "  texture: \"/game/characters_props/Items/weapons.atlas\"\n"
  "}\n"
  ""
  position {
    z: 0.7
  }
}
embedded_components {
  id: "debris_factory"
  type: "factory"
  data: "prototype: \"/game/characters_props/Items/weapon_arrow.go\"\n"
  ""
}
