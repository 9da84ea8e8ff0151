package playground

// demoPage is the playground harness. It mirrors the server-driven popup
// state: snapshots restyle the box, frames animate it.
const demoPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Popup Playground</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem; }
  #stage { position: relative; height: 320px; border: 1px dashed #bbb; }
  #anchor { position: absolute; left: 120px; top: 140px; }
  #popup {
    position: absolute; width: 200px; min-height: 80px;
    background: #fff; border: 1px solid #ccc; border-radius: 4px;
    box-shadow: 0 2px 8px rgba(0,0,0,.15); padding: .5rem;
    visibility: hidden;
  }
  #popup.inverted { background: #1b1c1d; color: #fff; }
  #log { font-family: monospace; font-size: .8rem; white-space: pre; }
</style>
</head>
<body>
<h1>Popup Playground</h1>
<p>
  <button id="open">Open</button>
  <button id="close">Close</button>
  <button id="toggle">Toggle</button>
  <select id="placement">
    <option>top left</option><option>top center</option><option>top right</option>
    <option>bottom left</option><option>bottom center</option><option>bottom right</option>
    <option>left center</option><option>right center</option>
  </select>
</p>
<div id="stage">
  <button id="anchor">anchor</button>
  <div id="popup"><b>Popup</b><div>driven by the server</div></div>
</div>
<div id="log"></div>
<script>
const ws = new WebSocket("ws://" + location.host + "/ws");
const popup = document.getElementById("popup");
const log = (line) => {
  const el = document.getElementById("log");
  el.textContent = (line + "\n" + el.textContent).split("\n").slice(0, 12).join("\n");
};
const send = (cmd) => ws.send(JSON.stringify(cmd));
const anchorRect = () => {
  const a = document.getElementById("anchor");
  const s = document.getElementById("stage").getBoundingClientRect();
  const r = a.getBoundingClientRect();
  return { x: r.left - s.left, y: r.top - s.top, w: r.width, h: r.height };
};
ws.onopen = () => {
  const s = document.getElementById("stage").getBoundingClientRect();
  send({ op: "anchor", anchor: anchorRect(), viewport: { x: 0, y: 0, w: s.width, h: s.height } });
};
ws.onmessage = (ev) => {
  const msg = JSON.parse(ev.data);
  if (msg.type === "event") log("event: " + msg.name);
  if (msg.type === "state") {
    popup.className = (msg.classes || []).join(" ");
    if (msg.container) {
      popup.style.left = msg.container.x + "px";
      popup.style.top = msg.container.y + "px";
    }
  }
  if (msg.type === "frame") {
    popup.style.visibility = msg.visible ? "visible" : "hidden";
    popup.style.opacity = msg.opacity;
    popup.style.transform =
      "translate(" + (msg.offsetX || 0) + "px," + (msg.offsetY || 0) + "px)" +
      " scale(" + (msg.scale || 1) + ")";
  }
};
document.getElementById("open").onclick = () => send({ op: "open" });
document.getElementById("close").onclick = () => send({ op: "close" });
document.getElementById("toggle").onclick = () => send({ op: "toggle" });
document.getElementById("placement").onchange = (e) =>
  send({ op: "configure", config: { placement: e.target.value } });
</script>
</body>
</html>
`
