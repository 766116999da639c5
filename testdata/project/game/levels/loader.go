components {
  id: "loader"
  component: "/scripts/game/Antagonist.script"
}
embedded_components {
  id: "arena_proxy"
  type: "collectionproxy"
  data: "collection: \"/game/levels/arena.collection\"\n"
  ""
}
